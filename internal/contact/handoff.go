// Package contact drafts outbound messages from buyers to sellers. It never
// mutates catalog state, performs no network call of its own, and cannot
// confirm that anything was actually delivered.
package contact

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rushikulya/marketkit/internal/domain"
	"github.com/rushikulya/marketkit/internal/validate"
)

// Kind is the listing type a contact request refers to.
type Kind string

const (
	KindService Kind = "service"
	KindProduct Kind = "product"
)

// CloseDelay is how long the form stays open after a successful handoff,
// mirroring the storefront behavior.
const CloseDelay = 500 * time.Millisecond

// ErrNotOpen is returned when a submission arrives with no open form.
var ErrNotOpen = errors.New("contact form is not open")

// Form is the buyer's contact request.
type Form struct {
	Name     string `validate:"required"`
	Phone    string `validate:"required,phone10" vmsg:"phone10=Phone number must be 10 digits"`
	Location string `validate:"required"`
}

// OrderForm is the storefront order request. Same shape, different phone
// wording on the storefront.
type OrderForm struct {
	Name     string `validate:"required"`
	Phone    string `validate:"required,phone10" vmsg:"phone10=Phone must be 10 digits"`
	Location string `validate:"required"`
}

// NewsletterForm holds a single subscriber address.
type NewsletterForm struct {
	Email string `validate:"required,email" vmsg:"required=Please enter your email address,email=Please enter a valid email address"`
}

// Handoff binds a contact form to a selected listing and hands valid
// submissions to the Notifier.
type Handoff struct {
	notifier   Notifier
	to         string
	closeDelay time.Duration

	mu      sync.Mutex
	open    bool
	kind    Kind
	service domain.Service
	product domain.Product
}

func NewHandoff(notifier Notifier, orderEmail string) *Handoff {
	return &Handoff{notifier: notifier, to: orderEmail, closeDelay: CloseDelay}
}

// OpenService binds an empty form to a service listing.
func (h *Handoff) OpenService(s domain.Service) {
	h.mu.Lock()
	h.open, h.kind, h.service, h.product = true, KindService, s, domain.Product{}
	h.mu.Unlock()
}

// OpenProduct binds an empty form to a product listing.
func (h *Handoff) OpenProduct(p domain.Product) {
	h.mu.Lock()
	h.open, h.kind, h.product, h.service = true, KindProduct, p, domain.Service{}
	h.mu.Unlock()
}

func (h *Handoff) IsOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

func (h *Handoff) Close() {
	h.mu.Lock()
	h.open = false
	h.mu.Unlock()
}

// Submit validates the form, drafts the message for the bound listing and
// hands it off. The form closes after a short fixed delay on success,
// regardless of whether the user's mail client actually sent anything.
func (h *Handoff) Submit(form Form) error {
	h.mu.Lock()
	if !h.open {
		h.mu.Unlock()
		return ErrNotOpen
	}
	kind, service, product := h.kind, h.service, h.product
	h.mu.Unlock()

	if err := validate.Struct(form); err != nil {
		return err
	}

	var msg Message
	if kind == KindService {
		msg = composeService(h.to, service, form)
	} else {
		msg = composeProduct(h.to, product, form)
	}
	if err := h.notifier.Notify(msg); err != nil {
		return err
	}
	zap.L().Info("contact handoff drafted",
		zap.String("kind", string(kind)), zap.String("subject", msg.Subject))
	time.AfterFunc(h.closeDelay, h.Close)
	return nil
}

// SubmitOrder drafts a storefront order for a product. The order form is not
// bound to the handoff's open/close state: the storefront closes its own
// dialog.
func (h *Handoff) SubmitOrder(p domain.Product, form OrderForm) error {
	if err := validate.Struct(form); err != nil {
		return err
	}
	return h.notifier.Notify(composeOrder(h.to, p, form))
}

// SubmitNewsletter drafts a newsletter subscription notice.
func (h *Handoff) SubmitNewsletter(email string) error {
	if err := validate.Struct(NewsletterForm{Email: email}); err != nil {
		return err
	}
	return h.notifier.Notify(composeNewsletter(h.to, email))
}
