package contact

import (
	"fmt"
	"strings"

	"github.com/rushikulya/marketkit/internal/domain"
)

// Message is a drafted outbound mail. Delivery belongs to the Notifier.
type Message struct {
	To      string
	Subject string
	Body    string
}

const signature = "Best regards,\nRushikulya Platform"

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func composeService(to string, s domain.Service, f Form) Message {
	body := strings.Join([]string{
		"Hello,",
		"",
		"A buyer is interested in the following service:",
		"",
		"--- BUYER INFORMATION ---",
		"Name: " + f.Name,
		"Phone: " + f.Phone,
		"Location: " + f.Location,
		"",
		"--- SERVICE DETAILS ---",
		"Service Name: " + s.ServiceName,
		"Service Code: " + orNA(s.Code),
		"Provider Name: " + s.SellerName,
		"Available Time: " + s.AvailableTime,
		"Provider Location: " + s.Location,
		"",
		"Please contact the buyer to provide more details about this service.",
		"",
		signature,
	}, "\n")
	return Message{To: to, Subject: "Interest in Service: " + s.ServiceName, Body: body}
}

func composeProduct(to string, p domain.Product, f Form) Message {
	seller := p.SellerName
	if seller == "" {
		seller = "Rushikulya"
	}
	body := strings.Join([]string{
		"Hello,",
		"",
		"A buyer is interested in the following product:",
		"",
		"--- BUYER INFORMATION ---",
		"Name: " + f.Name,
		"Phone: " + f.Phone,
		"Location: " + f.Location,
		"",
		"--- PRODUCT DETAILS ---",
		"Product Name: " + p.Name,
		"Product Code: " + orNA(p.Code),
		"Seller Name: " + seller,
		"Seller Location: " + orNA(p.Location),
		"",
		"Please contact the buyer to provide more details about this product.",
		"",
		signature,
	}, "\n")
	return Message{To: to, Subject: "Interest in Product: " + p.Name, Body: body}
}

func composeOrder(to string, p domain.Product, f OrderForm) Message {
	body := strings.Join([]string{
		"A new product order request:",
		"",
		"Customer Name: " + f.Name,
		"Phone: " + f.Phone,
		"Location: " + f.Location,
		"",
		"Product Details:",
		"- Name: " + orNA(p.Name),
		"- Description: " + orNA(p.Description),
		fmt.Sprintf("- Price: ₹%.2f", p.Price),
		"- Product ID: " + orNA(p.ID),
		"",
		"Please confirm availability and reply to the customer.",
	}, "\n")
	return Message{To: to, Subject: "New Product Order from " + f.Name, Body: body}
}

func composeNewsletter(to, email string) Message {
	body := strings.Join([]string{
		"Hello,",
		"",
		"You have a new newsletter subscription:",
		"",
		"--- SUBSCRIBER INFORMATION ---",
		"Email: " + email,
		"",
		"---",
		"Sent from Rushikulya Marketplace Newsletter Subscription",
	}, "\n")
	return Message{To: to, Subject: "New Newsletter Subscription", Body: body}
}
