// Package email sends transactional storefront emails over SMTP. It is
// driven by the order events consumer; a failed send is reported to the
// caller and never affects the order that triggered it.
package email

import (
	"fmt"
	"net/smtp"
)

// Service handles email sending via SMTP.
type Service struct {
	host string
	port string
	from string
}

// NewService creates a new email service.
func NewService(host, port, from string) *Service {
	return &Service{host: host, port: port, from: from}
}

// SendOrderConfirmation sends an order confirmation email.
func (s *Service) SendOrderConfirmation(to, name, orderID, total string) error {
	shortID := orderID
	if len(orderID) > 8 {
		shortID = orderID[:8]
	}
	subject := fmt.Sprintf("Order confirmed — thanks for your purchase (order %s)", shortID)
	return s.send(to, subject, BuildOrderConfirmationBody(name, orderID, total))
}

// SendShippingUpdate sends a shipping update email with tracking details.
func (s *Service) SendShippingUpdate(to, name, orderID, trackingNumber, trackingURL string) error {
	shortID := orderID
	if len(orderID) > 8 {
		shortID = orderID[:8]
	}
	subject := fmt.Sprintf("Your order %s has shipped", shortID)
	return s.send(to, subject, BuildShippingUpdateBody(name, orderID, trackingNumber, trackingURL))
}

func (s *Service) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
