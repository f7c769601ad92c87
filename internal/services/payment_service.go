package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v79"
	"github.com/threadup-app/backend/internal/models"
	"gorm.io/gorm"
)

// IntentCreator is the slice of the Stripe client the service needs;
// satisfied by *paymentintent.Client.
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// PaymentService records payment intents at creation and settles them from
// signature-verified webhook events. Membership is only ever granted against
// a settled row, never on the client's report of success.
type PaymentService struct {
	db      *gorm.DB
	intents IntentCreator
	users   *UserService
}

func NewPaymentService(db *gorm.DB, intents IntentCreator, users *UserService) *PaymentService {
	return &PaymentService{db: db, intents: intents, users: users}
}

// CreateIntent creates a Stripe payment intent and tracks it locally.
// Returns the client secret the frontend confirms the card against.
func (s *PaymentService) CreateIntent(amountCents int64, email string) (string, error) {
	if amountCents <= 0 {
		return "", validationError("amount must be positive")
	}
	if email == "" {
		return "", validationError("email is required")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("email", email)

	pi, err := s.intents.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	payment := models.Payment{
		IntentID:    pi.ID,
		Email:       email,
		AmountCents: amountCents,
		Currency:    string(stripe.CurrencyUSD),
		Status:      models.PaymentStatusCreated,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return "", fmt.Errorf("failed to record payment: %w", err)
	}

	return pi.ClientSecret, nil
}

// HandleEvent settles a webhook event. Unknown event types are acknowledged
// and ignored so Stripe does not retry them.
func (s *PaymentService) HandleEvent(event *stripe.Event) error {
	switch event.Type {
	case "payment_intent.succeeded":
		return s.handleSucceeded(event)
	default:
		return nil
	}
}

func (s *PaymentService) handleSucceeded(event *stripe.Event) error {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return fmt.Errorf("failed to parse payment intent: %w", err)
	}

	var payment models.Payment
	if err := s.db.Where("intent_id = ?", pi.ID).First(&payment).Error; err != nil {
		return fmt.Errorf("payment record not found for intent %s: %w", pi.ID, err)
	}

	// Settling twice is harmless; the upgrade below is idempotent too.
	if payment.Status == models.PaymentStatusCreated {
		if err := s.db.Model(&payment).Update("status", models.PaymentStatusSucceeded).Error; err != nil {
			return err
		}
	}

	// Apply the upgrade immediately; the user may also hit /update-user,
	// which finds the settled row and is a no-op once upgraded.
	if _, err := s.users.UpgradeMembership(payment.Email); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			slog.Warn("payment settled for unknown user", "email", payment.Email, "intent_id", pi.ID)
			return nil
		}
		return err
	}
	return nil
}
