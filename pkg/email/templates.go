package email

import "fmt"

// BuildOrderConfirmationBody builds the HTML body for the order confirmation
// email. Total arrives as a fixed-point decimal string.
func BuildOrderConfirmationBody(name, orderID, total string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 24px;">Thanks for your order, %s!</h1>
	<p>We've received your order and are getting it ready.</p>
	<p>Order number: <strong>%s</strong></p>
	<p>Order total: <strong>$%s</strong></p>
	<p>We'll send another email when your order ships.</p>
	<p style="color: #888; font-size: 12px;">LTY &mdash; make your mark.</p>
</body>
</html>`, name, orderID, total)
}

// BuildShippingUpdateBody builds the HTML body for the shipping update email.
func BuildShippingUpdateBody(name, orderID, trackingNumber, trackingURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 24px;">Your order is on its way, %s!</h1>
	<p>Order <strong>%s</strong> has shipped.</p>
	<p>Tracking number: <strong>%s</strong></p>
	<p><a href="%s">Track your package</a></p>
	<p style="color: #888; font-size: 12px;">LTY &mdash; make your mark.</p>
</body>
</html>`, name, orderID, trackingNumber, trackingURL)
}
