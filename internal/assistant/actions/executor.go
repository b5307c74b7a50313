// Package actions applies recognized cart and wishlist commands against the
// catalog and the user's stored cart and wishlist documents.
package actions

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"shoestore-assistant/internal/assistant/intent"
	"shoestore-assistant/internal/assistant/matcher"
	"shoestore-assistant/internal/common/errors"
	"shoestore-assistant/internal/common/logger"
	"shoestore-assistant/internal/common/metrics"
	"shoestore-assistant/internal/events"
	"shoestore-assistant/internal/models"
)

// CatalogSource supplies the candidate entries an action can target.
type CatalogSource interface {
	Find(ctx context.Context, query models.FacetQuery) ([]models.CatalogEntry, error)
}

// CommerceStore holds per-user cart and wishlist documents.
type CommerceStore interface {
	Cart(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	Wishlist(ctx context.Context, userID string) (*models.Wishlist, error)
	SaveWishlist(ctx context.Context, wishlist *models.Wishlist) error
}

// Publisher emits an event after each completed action. May be nil.
type Publisher interface {
	Publish(ctx context.Context, event events.ActionEvent) error
}

// PendingAction reports an action that needs more information before it can
// run. Nothing is retained server-side; the caller resubmits.
type PendingAction struct {
	Target      intent.ActionTarget `json:"type"`
	Verb        intent.ActionVerb   `json:"action"`
	ProductID   string              `json:"shoeId"`
	ProductName string              `json:"shoeName"`
}

// ActionTaken describes a completed mutation.
type ActionTaken struct {
	Target intent.ActionTarget `json:"type"`
	Verb   intent.ActionVerb   `json:"action"`
	Entry  models.CatalogEntry `json:"shoe"`
	Size   float64             `json:"size,omitempty"`
}

// Result is the user-facing outcome of an action request.
type Result struct {
	Response    string         `json:"response"`
	Pending     *PendingAction `json:"pendingAction,omitempty"`
	ActionTaken *ActionTaken   `json:"actionTaken,omitempty"`
}

type Executor struct {
	catalog CatalogSource
	store   CommerceStore
	matcher *matcher.Matcher
	events  Publisher
	log     logger.Logger
}

func NewExecutor(catalog CatalogSource, store CommerceStore, m *matcher.Matcher, publisher Publisher, log logger.Logger) *Executor {
	return &Executor{catalog: catalog, store: store, matcher: m, events: publisher, log: log}
}

var actionSizePattern = regexp.MustCompile(`(?i)size\s+(\d+(\.\d+)?)|size[:\s-]+(\d+(\.\d+)?)|(\d+(\.\d+)?)\s+size`)

// Execute resolves the target entry and applies the request. A returned
// error means infrastructure failed and the caller should fall back to the
// normal chat path; refusals and disambiguation asks are successful Results.
func (e *Executor) Execute(ctx context.Context, req *intent.ActionRequest, userID string, colorFilters []string) (*Result, error) {
	query := models.FacetQuery{}
	if len(colorFilters) > 0 {
		query.Colors = colorFilters
	}
	entries, err := e.catalog.Find(ctx, query)
	if err != nil {
		return nil, errors.NewActionHandlingFailedError("fetching catalog for action", err)
	}

	target := e.matcher.FindBestActionTarget(req.RawMessage, req.ExplicitProduct, entries, colorFilters)
	if target == nil {
		return &Result{
			Response: "I couldn't identify which shoe you want to modify. Try saying something like 'Add Nike Air Max to cart' or specify the shoe name more clearly.",
		}, nil
	}

	e.log.Debug("resolved action target", map[string]interface{}{
		"name": target.Name, "action": string(req.Verb), "target": string(req.Target),
	})

	if req.Verb == intent.VerbAdd && req.Target == intent.TargetCart && target.Stock <= 0 {
		return &Result{
			Response: "I'm sorry, the " + target.Name + " is currently out of stock. Would you like to add it to your wishlist instead?",
		}, nil
	}

	size := extractActionSize(req.RawMessage)

	var result *Result
	switch req.Target {
	case intent.TargetCart:
		result, err = e.cartAction(ctx, userID, req.Verb, *target, size)
	case intent.TargetWishlist:
		result, err = e.wishlistAction(ctx, userID, req.Verb, *target)
	default:
		return &Result{Response: "I'm not sure what you want to do with this shoe. Please try again with a clearer request."}, nil
	}
	if err != nil {
		return nil, err
	}

	if result.ActionTaken != nil {
		metrics.ActionsExecuted.WithLabelValues(string(req.Target), string(req.Verb)).Inc()
		e.publish(ctx, userID, result.ActionTaken)
	}
	return result, nil
}

func (e *Executor) cartAction(ctx context.Context, userID string, verb intent.ActionVerb, entry models.CatalogEntry, size float64) (*Result, error) {
	cart, err := e.store.Cart(ctx, userID)
	if err != nil {
		return nil, errors.NewActionHandlingFailedError("loading cart", err)
	}

	switch verb {
	case intent.VerbAdd:
		if cart == nil {
			cart = &models.Cart{UserID: userID}
		}
		return e.cartAdd(ctx, cart, entry, size)
	case intent.VerbRemove:
		if cart == nil || len(cart.Items) == 0 {
			return &Result{Response: "You don't have any items in your cart."}, nil
		}
		return e.cartRemove(ctx, cart, entry, size)
	}
	return &Result{Response: "Invalid cart action."}, nil
}

func (e *Executor) cartAdd(ctx context.Context, cart *models.Cart, entry models.CatalogEntry, size float64) (*Result, error) {
	if size != 0 && len(entry.Sizes) > 0 && !entry.HasSize(size) {
		return &Result{
			Response: "Sorry, the " + entry.Name + " is not available in size " + formatSize(size) +
				". Available sizes are: " + formatSizes(entry.Sizes) + ".",
		}, nil
	}

	if size == 0 && len(entry.Sizes) > 1 {
		return &Result{
			Response: "What size would you like for the " + entry.Name +
				"? Available sizes are: " + formatSizes(entry.Sizes) + ".",
			Pending: &PendingAction{
				Target: intent.TargetCart, Verb: intent.VerbAdd,
				ProductID: entry.ID, ProductName: entry.Name,
			},
		}, nil
	}

	selected := size
	if selected == 0 && len(entry.Sizes) > 0 {
		selected = entry.Sizes[0]
	}

	updated := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == entry.ID && cart.Items[i].Size == selected {
			cart.Items[i].Quantity++
			updated = true
			break
		}
	}
	if !updated {
		cart.Items = append(cart.Items, models.CartItem{
			LineID:        uuid.NewString(),
			ProductID:     entry.ID,
			Name:          entry.Name,
			Size:          selected,
			Quantity:      1,
			Price:         entry.EffectivePrice(),
			OriginalPrice: models.Round2(entry.Price),
		})
	}
	cart.RecomputeTotal()
	cart.UpdatedAt = time.Now().UTC()

	if err := e.store.SaveCart(ctx, cart); err != nil {
		return nil, errors.NewActionHandlingFailedError("saving cart", err)
	}

	return &Result{
		Response: "I've added the " + entry.Name + " in size " + formatSize(selected) + " to your cart.",
		ActionTaken: &ActionTaken{
			Target: intent.TargetCart, Verb: intent.VerbAdd, Entry: entry, Size: selected,
		},
	}, nil
}

func (e *Executor) cartRemove(ctx context.Context, cart *models.Cart, entry models.CatalogEntry, size float64) (*Result, error) {
	idx := -1
	for i, item := range cart.Items {
		if item.ProductID == entry.ID && (size == 0 || item.Size == size) {
			idx = i
			break
		}
	}

	sizeClause := ""
	if size != 0 {
		sizeClause = "in size " + formatSize(size) + " "
	}

	if idx == -1 {
		return &Result{Response: "I couldn't find the " + entry.Name + " " + sizeClause + "in your cart."}, nil
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	cart.RecomputeTotal()
	cart.UpdatedAt = time.Now().UTC()

	if err := e.store.SaveCart(ctx, cart); err != nil {
		return nil, errors.NewActionHandlingFailedError("saving cart", err)
	}

	return &Result{
		Response: "I've removed the " + entry.Name + " " + sizeClause + "from your cart.",
		ActionTaken: &ActionTaken{
			Target: intent.TargetCart, Verb: intent.VerbRemove, Entry: entry, Size: size,
		},
	}, nil
}

func (e *Executor) wishlistAction(ctx context.Context, userID string, verb intent.ActionVerb, entry models.CatalogEntry) (*Result, error) {
	wishlist, err := e.store.Wishlist(ctx, userID)
	if err != nil {
		return nil, errors.NewActionHandlingFailedError("loading wishlist", err)
	}

	switch verb {
	case intent.VerbAdd:
		if wishlist == nil {
			wishlist = &models.Wishlist{UserID: userID}
		}
		// Idempotent: a second add of the same product changes nothing and
		// reports no mutation.
		for _, item := range wishlist.Items {
			if item.ProductID == entry.ID {
				return &Result{
					Response: "The " + entry.Name + " is already in your wishlist.",
				}, nil
			}
		}
		wishlist.Items = append(wishlist.Items, models.WishlistItem{
			ProductID: entry.ID,
			Name:      entry.Name,
			Brand:     entry.Brand,
			Price:     entry.EffectivePrice(),
			AddedAt:   time.Now().UTC(),
		})
		if err := e.store.SaveWishlist(ctx, wishlist); err != nil {
			return nil, errors.NewActionHandlingFailedError("saving wishlist", err)
		}
		return &Result{
			Response: "I've added the " + entry.Name + " to your wishlist.",
			ActionTaken: &ActionTaken{
				Target: intent.TargetWishlist, Verb: intent.VerbAdd, Entry: entry,
			},
		}, nil

	case intent.VerbRemove:
		if wishlist == nil || len(wishlist.Items) == 0 {
			return &Result{Response: "You don't have any items in your wishlist."}, nil
		}
		idx := -1
		for i, item := range wishlist.Items {
			if item.ProductID == entry.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return &Result{Response: "I couldn't find the " + entry.Name + " in your wishlist."}, nil
		}
		wishlist.Items = append(wishlist.Items[:idx], wishlist.Items[idx+1:]...)
		if err := e.store.SaveWishlist(ctx, wishlist); err != nil {
			return nil, errors.NewActionHandlingFailedError("saving wishlist", err)
		}
		return &Result{
			Response: "I've removed the " + entry.Name + " from your wishlist.",
			ActionTaken: &ActionTaken{
				Target: intent.TargetWishlist, Verb: intent.VerbRemove, Entry: entry,
			},
		}, nil
	}

	return &Result{Response: "Invalid wishlist action."}, nil
}

func (e *Executor) publish(ctx context.Context, userID string, taken *ActionTaken) {
	if e.events == nil {
		return
	}
	event := events.ActionEvent{
		Target:    string(taken.Target),
		Action:    string(taken.Verb),
		UserID:    userID,
		ProductID: taken.Entry.ID,
		Name:      taken.Entry.Name,
		Size:      taken.Size,
		At:        time.Now().UTC(),
	}
	if err := e.events.Publish(ctx, event); err != nil {
		e.log.Warn("action event publish failed", map[string]interface{}{"error": err.Error()})
	}
}

// extractActionSize pulls a size mention out of an action message. Returns
// 0 when none is present.
func extractActionSize(message string) float64 {
	m := actionSizePattern.FindStringSubmatch(message)
	if m == nil {
		return 0
	}
	for _, group := range []string{m[1], m[3], m[5]} {
		if group == "" {
			continue
		}
		if v, err := strconv.ParseFloat(group, 64); err == nil {
			return v
		}
	}
	return 0
}

func formatSize(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64)
}

func formatSizes(sizes []float64) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = formatSize(s)
	}
	return strings.Join(parts, ", ")
}
