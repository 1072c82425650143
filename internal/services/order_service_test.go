package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/anandamoyee/internal/models"
	"github.com/example/anandamoyee/internal/otp"
	"github.com/example/anandamoyee/internal/repositories"
)

type fakeProducts map[uuid.UUID]*models.Product

func (f fakeProducts) FindByID(id uuid.UUID) (*models.Product, error) {
	if product, ok := f[id]; ok {
		copied := *product
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

type fakeOrderWriter struct {
	created []*models.Order
	err     error
}

func (f *fakeOrderWriter) Create(order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	order.ID = uuid.New()
	f.created = append(f.created, order)
	return nil
}

// fakeConsumer mimics the single-use consumption rule of the OTP store.
type fakeConsumer struct {
	verified map[string]bool
	consumed []string
}

func (f *fakeConsumer) Consume(phone string) error {
	if f.verified[phone] {
		delete(f.verified, phone)
		f.consumed = append(f.consumed, phone)
		return nil
	}
	return otp.ErrNotVerified
}

type fakeNotifier struct {
	ownerErr    error
	customerErr error
	owner       []OrderNotification
	customer    []OrderNotification
}

func (f *fakeNotifier) NotifyOwnerNewOrder(n OrderNotification) error {
	f.owner = append(f.owner, n)
	return f.ownerErr
}

func (f *fakeNotifier) ConfirmOrderToCustomer(n OrderNotification) error {
	f.customer = append(f.customer, n)
	return f.customerErr
}

type orderFixture struct {
	svc      *OrderService
	products fakeProducts
	orders   *fakeOrderWriter
	consumer *fakeConsumer
	notifier *fakeNotifier
	polisher *models.Product
	screen   *models.Product
}

func newOrderFixture() *orderFixture {
	polisher := &models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "6N40 Rice Polisher",
		Price:     45000,
		Image:     "polisher.jpg",
	}
	screen := &models.Product{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Rice Mill Screen 1mm",
		Price:     1200,
		Image:     "screen.jpg",
	}

	f := &orderFixture{
		products: fakeProducts{polisher.ID: polisher, screen.ID: screen},
		orders:   &fakeOrderWriter{},
		consumer: &fakeConsumer{verified: map[string]bool{}},
		notifier: &fakeNotifier{},
		polisher: polisher,
		screen:   screen,
	}
	f.svc = NewOrderService(f.products, f.orders, f.consumer, f.notifier)
	return f
}

const customerPhone = "919000000001"

func TestPlaceOrderRejectsMissingFields(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.PlaceOrder(PlaceOrderRequest{Quantity: 1, CustomerPhone: customerPhone})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = f.svc.PlaceOrder(PlaceOrderRequest{ProductID: f.polisher.ID.String(), CustomerPhone: customerPhone})
	require.ErrorAs(t, err, &validation)

	_, err = f.svc.PlaceOrder(PlaceOrderRequest{ProductID: f.polisher.ID.String(), Quantity: 1})
	require.ErrorAs(t, err, &validation)
}

func TestPlaceOrderGuestWithoutVerificationIsForbidden(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.PlaceOrder(PlaceOrderRequest{
		ProductID:     f.polisher.ID.String(),
		Quantity:      2,
		CustomerPhone: customerPhone,
	})
	assert.ErrorIs(t, err, otp.ErrNotVerified)
	assert.Empty(t, f.orders.created)
}

func TestPlaceOrderGuestSnapshotsProduct(t *testing.T) {
	f := newOrderFixture()
	f.consumer.verified[customerPhone] = true

	result, err := f.svc.PlaceOrder(PlaceOrderRequest{
		ProductID:     f.polisher.ID.String(),
		Quantity:      2,
		CustomerPhone: customerPhone,
	})
	require.NoError(t, err)

	order := result.Order
	assert.Nil(t, order.CustomerID)
	assert.Equal(t, customerPhone, order.CustomerPhone)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, float64(90000), order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "6N40 Rice Polisher", order.Items[0].ProductName)
	assert.Equal(t, float64(45000), order.Items[0].ProductPrice)
	assert.Equal(t, float64(90000), order.Items[0].Subtotal)
	assert.Equal(t, []string{customerPhone}, f.consumer.consumed)

	// A later catalog price edit must not change the persisted order.
	f.polisher.Price = 99999
	assert.Equal(t, float64(90000), order.TotalAmount)
	assert.Equal(t, float64(45000), order.Items[0].ProductPrice)
}

func TestPlaceOrderConsumesCodeExactlyOnce(t *testing.T) {
	f := newOrderFixture()
	f.consumer.verified[customerPhone] = true

	req := PlaceOrderRequest{
		ProductID:     f.polisher.ID.String(),
		Quantity:      1,
		CustomerPhone: customerPhone,
	}

	_, err := f.svc.PlaceOrder(req)
	require.NoError(t, err)

	_, err = f.svc.PlaceOrder(req)
	assert.ErrorIs(t, err, otp.ErrNotVerified)
	assert.Len(t, f.orders.created, 1)
}

func TestPlaceOrderLoggedInSkipsOTP(t *testing.T) {
	f := newOrderFixture()
	customerID := uuid.New()

	result, err := f.svc.PlaceOrder(PlaceOrderRequest{
		ProductID:     f.polisher.ID.String(),
		Quantity:      1,
		CustomerPhone: customerPhone,
		CustomerID:    customerID.String(),
	})
	require.NoError(t, err)

	require.NotNil(t, result.Order.CustomerID)
	assert.Equal(t, customerID, *result.Order.CustomerID)
	assert.Empty(t, f.consumer.consumed)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	f := newOrderFixture()
	f.consumer.verified[customerPhone] = true

	_, err := f.svc.PlaceOrder(PlaceOrderRequest{
		ProductID:     uuid.NewString(),
		Quantity:      1,
		CustomerPhone: customerPhone,
	})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Empty(t, f.orders.created)
}

func TestPlaceOrderNotificationFailureIsAdvisory(t *testing.T) {
	f := newOrderFixture()
	f.consumer.verified[customerPhone] = true
	f.notifier.customerErr = errors.New("gateway down")

	result, err := f.svc.PlaceOrder(PlaceOrderRequest{
		ProductID:     f.polisher.ID.String(),
		Quantity:      1,
		CustomerPhone: customerPhone,
	})
	require.NoError(t, err)
	assert.False(t, result.WhatsAppSent)
	assert.Len(t, f.orders.created, 1)
}

func TestPlaceOrderOwnerFailureDoesNotAffectSentFlag(t *testing.T) {
	f := newOrderFixture()
	f.consumer.verified[customerPhone] = true
	f.notifier.ownerErr = errors.New("owner unreachable")

	result, err := f.svc.PlaceOrder(PlaceOrderRequest{
		ProductID:     f.polisher.ID.String(),
		Quantity:      1,
		CustomerPhone: customerPhone,
	})
	require.NoError(t, err)
	assert.True(t, result.WhatsAppSent)
	assert.Len(t, f.notifier.owner, 1)
	assert.Len(t, f.notifier.customer, 1)
}

func TestPlaceCartOrderSkipsUnresolvableLines(t *testing.T) {
	f := newOrderFixture()
	f.consumer.verified[customerPhone] = true

	result, err := f.svc.PlaceCartOrder(PlaceCartOrderRequest{
		Items: []CartItemRequest{
			{ProductID: f.screen.ID.String(), Quantity: 2},
			{ProductID: uuid.NewString(), Quantity: 1},
		},
		CustomerPhone: customerPhone,
	})
	require.NoError(t, err)

	order := result.Order
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Rice Mill Screen 1mm", order.Items[0].ProductName)
	assert.Equal(t, float64(2400), order.Items[0].Subtotal)
	assert.Equal(t, float64(2400), order.TotalAmount)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no longer available")
}

func TestPlaceCartOrderAllLinesUnresolvable(t *testing.T) {
	f := newOrderFixture()
	f.consumer.verified[customerPhone] = true

	_, err := f.svc.PlaceCartOrder(PlaceCartOrderRequest{
		Items:         []CartItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		CustomerPhone: customerPhone,
	})

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "No valid products found in cart", validation.Msg)
	assert.Empty(t, f.orders.created)
}

func TestPlaceCartOrderTotalsMultipleLines(t *testing.T) {
	f := newOrderFixture()
	f.consumer.verified[customerPhone] = true

	result, err := f.svc.PlaceCartOrder(PlaceCartOrderRequest{
		Items: []CartItemRequest{
			{ProductID: f.screen.ID.String(), Quantity: 3},
			{ProductID: f.polisher.ID.String(), Quantity: 1},
		},
		CustomerPhone: customerPhone,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(3*1200+45000), result.Order.TotalAmount)
	assert.Empty(t, result.Warnings)

	require.Len(t, f.notifier.customer, 1)
	assert.Len(t, f.notifier.customer[0].Items, 2)
}

func TestPlaceCartOrderRejectsEmptyCart(t *testing.T) {
	f := newOrderFixture()

	_, err := f.svc.PlaceCartOrder(PlaceCartOrderRequest{CustomerPhone: customerPhone})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestPlaceCartOrderRejectsZeroQuantity(t *testing.T) {
	f := newOrderFixture()
	f.consumer.verified[customerPhone] = true

	_, err := f.svc.PlaceCartOrder(PlaceCartOrderRequest{
		Items:         []CartItemRequest{{ProductID: f.screen.ID.String(), Quantity: 0}},
		CustomerPhone: customerPhone,
	})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}
