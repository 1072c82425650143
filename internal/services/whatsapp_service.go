package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Setting keys the gateway reads at send time.
const (
	SettingTokenKey      = "nextsms_token"
	SettingOwnerPhoneKey = "owner_phone"
)

// countryPrefix is prepended to bare national numbers.
const countryPrefix = "91"

// ErrTokenNotConfigured means the messaging credential is missing; no
// network call is attempted in that case.
var ErrTokenNotConfigured = errors.New("WhatsApp API token not configured")

// CredentialSource resolves runtime-configurable settings by key.
type CredentialSource interface {
	Get(key string) (string, error)
}

// WhatsAppService sends outbound messages through the NextSMS HTTP API.
type WhatsAppService struct {
	settings CredentialSource
	apiURL   string
	client   *http.Client
}

// NewWhatsAppService constructs a WhatsAppService targeting apiURL.
func NewWhatsAppService(settings CredentialSource, apiURL string) *WhatsAppService {
	return &WhatsAppService{
		settings: settings,
		apiURL:   apiURL,
		client:   http.DefaultClient,
	}
}

// NormalizePhone reduces phone to digits and ensures the international
// prefix: bare 10-digit numbers get the country code prepended, and a
// leading "0" is replaced by it.
func NormalizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	receiver := digits.String()
	if len(receiver) == 10 {
		return countryPrefix + receiver
	}
	if strings.HasPrefix(receiver, "0") {
		return countryPrefix + receiver[1:]
	}
	return receiver
}

// SendMessage delivers text to phone. The call is synchronous and never
// retried; callers decide whether a failure is fatal.
func (s *WhatsAppService) SendMessage(phone, text string) error {
	return s.send(phone, text, "")
}

// SendMedia delivers text with an attached media URL.
func (s *WhatsAppService) SendMedia(phone, text, mediaURL string) error {
	return s.send(phone, text, mediaURL)
}

func (s *WhatsAppService) send(phone, text, mediaURL string) error {
	token, err := s.settings.Get(SettingTokenKey)
	if err != nil {
		return err
	}
	if token == "" {
		log.Println("[WhatsApp] API token not configured, set it from the admin panel")
		return ErrTokenNotConfigured
	}

	receiver := NormalizePhone(phone)

	params := url.Values{}
	params.Set("receiver", receiver)
	params.Set("msgtext", text)
	params.Set("token", token)
	if mediaURL != "" {
		params.Set("mediaUrl", mediaURL)
	}

	resp, err := s.client.Get(s.apiURL + "?" + params.Encode())
	if err != nil {
		log.Printf("[WhatsApp] send failed: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := remoteErrorMessage(body)
		log.Printf("[WhatsApp] API error: status=%d %s", resp.StatusCode, msg)
		return fmt.Errorf("failed to send message: %s", msg)
	}

	log.Printf("[WhatsApp] message sent to %s", receiver)
	return nil
}

func remoteErrorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}

// SendOTP delivers a verification code to phone.
func (s *WhatsAppService) SendOTP(phone, code string) error {
	text := fmt.Sprintf("🔐 *Anandamoyee India - OTP Verification*\n\n"+
		"Your OTP is: *%s*\n\n"+
		"This code expires in 5 minutes.\nDo not share this code with anyone.", code)
	return s.SendMessage(phone, text)
}

// SendTest delivers the admin-panel test message.
func (s *WhatsAppService) SendTest(phone string) error {
	return s.SendMessage(phone, "✅ Test message from Anandamoyee India! WhatsApp API is working.")
}

// OrderNotification carries the data order messages are built from.
type OrderNotification struct {
	OrderID       string
	Items         []OrderItemNotification
	TotalAmount   float64
	CustomerPhone string
	PlacedAt      time.Time
}

// OrderItemNotification is one line of an order message.
type OrderItemNotification struct {
	Name     string
	Price    float64
	Quantity int
	Subtotal float64
}

func itemsList(items []OrderItemNotification) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s × %d = ₹%s\n", i+1, item.Name, item.Quantity, FormatAmount(item.Subtotal))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatAmount renders an amount with thousand separators.
func FormatAmount(amount float64) string {
	str := fmt.Sprintf("%d", int64(amount))

	var result strings.Builder
	length := len(str)
	for i, digit := range str {
		if i > 0 && (length-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}
	return result.String()
}

// NotifyOwnerNewOrder messages the merchant about a fresh order. When no
// owner phone is configured the notification is skipped silently.
func (s *WhatsAppService) NotifyOwnerNewOrder(n OrderNotification) error {
	ownerPhone, err := s.settings.Get(SettingOwnerPhoneKey)
	if err != nil {
		return err
	}
	if ownerPhone == "" {
		return nil
	}

	var message string
	if len(n.Items) == 1 {
		item := n.Items[0]
		message = fmt.Sprintf("🛒 *New Order Received!*\n\n"+
			"📦 *Product:* %s\n"+
			"💰 *Price:* ₹%s\n"+
			"📊 *Quantity:* %d\n"+
			"💵 *Total:* ₹%s\n"+
			"📱 *Customer Phone:* %s\n"+
			"📅 *Date:* %s\n\n"+
			"Order ID: %s",
			item.Name,
			FormatAmount(item.Price),
			item.Quantity,
			FormatAmount(n.TotalAmount),
			n.CustomerPhone,
			n.PlacedAt.Format("02/01/2006, 3:04:05 pm"),
			n.OrderID,
		)
	} else {
		message = fmt.Sprintf("🛒 *New Cart Order Received!*\n\n"+
			"📦 *Items (%d):*\n%s\n\n"+
			"💵 *Total:* ₹%s\n"+
			"📱 *Customer:* %s\n"+
			"📅 *Date:* %s\n\n"+
			"Order ID: %s",
			len(n.Items),
			itemsList(n.Items),
			FormatAmount(n.TotalAmount),
			n.CustomerPhone,
			n.PlacedAt.Format("02/01/2006, 3:04:05 pm"),
			n.OrderID,
		)
	}

	return s.SendMessage(ownerPhone, message)
}

// ConfirmOrderToCustomer messages the customer their order summary.
func (s *WhatsAppService) ConfirmOrderToCustomer(n OrderNotification) error {
	var message string
	if len(n.Items) == 1 {
		item := n.Items[0]
		message = fmt.Sprintf("✅ *Order Confirmed - Anandamoyee India*\n\n"+
			"Thank you for your order!\n\n"+
			"📦 *Product:* %s\n"+
			"📊 *Quantity:* %d\n"+
			"💵 *Total:* ₹%s\n\n"+
			"We will contact you shortly to confirm delivery details.",
			item.Name,
			item.Quantity,
			FormatAmount(n.TotalAmount),
		)
	} else {
		message = fmt.Sprintf("✅ *Order Confirmed - Anandamoyee India*\n\n"+
			"Thank you for your order!\n\n"+
			"📦 *Items:*\n%s\n\n"+
			"💵 *Total:* ₹%s\n\n"+
			"We will contact you shortly to confirm delivery details.",
			itemsList(n.Items),
			FormatAmount(n.TotalAmount),
		)
	}

	return s.SendMessage(n.CustomerPhone, message)
}

// NotifyOwnerEnquiry messages the merchant about a new enquiry. Skipped
// silently when no owner phone is configured.
func (s *WhatsAppService) NotifyOwnerEnquiry(name, phone, message string, receivedAt time.Time) error {
	ownerPhone, err := s.settings.Get(SettingOwnerPhoneKey)
	if err != nil {
		return err
	}
	if ownerPhone == "" {
		return nil
	}

	if message == "" {
		message = "No message"
	}

	text := fmt.Sprintf("📞 *New Enquiry Received!*\n\n"+
		"👤 *Name:* %s\n"+
		"📱 *Phone:* %s\n"+
		"💬 *Message:* %s\n"+
		"📅 *Date:* %s",
		name, phone, message, receivedAt.Format("02/01/2006, 3:04:05 pm"))

	return s.SendMessage(ownerPhone, text)
}
