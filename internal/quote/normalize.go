package quote

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/payload"
)

const TagCheapest = "cheapest"

type Option struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     int64    `json:"price"`
	ETA       string   `json:"eta,omitempty"`
	CarrierID string   `json:"carrier_id,omitempty"`
	ServiceID string   `json:"service_id,omitempty"`
	Tags      []string `json:"tags"`
}

func (o Option) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Price fields in priority order. The first one present wins even when it
// does not hold a positive amount.
var priceFields = []string{"price", "total_price", "final_price", "amount", "rate.price", "cost"}

var (
	idFields        = []payload.Extractor{payload.Field("id"), payload.Field("option_id")}
	nameFields      = []payload.Extractor{payload.Field("name"), payload.Field("service_name"), payload.Field("service.name"), payload.Field("carrier_name")}
	etaFields       = []payload.Extractor{payload.Field("eta"), payload.Field("delivery_time"), payload.Field("estimated_delivery"), payload.Field("transit_days")}
	carrierIDFields = []payload.Extractor{payload.Field("carrier_id"), payload.Field("carrier.id")}
	serviceIDFields = []payload.Extractor{payload.Field("service_id"), payload.Field("service.id")}
	carrierName     = []payload.Extractor{payload.Field("carrier_name"), payload.Field("carrier.name")}
)

// Normalize maps a rate response onto options. A pre-filtered "options" array
// is kept in its order; "all_results" is filtered to selectable entries and
// sorted by price. Unpriced options are dropped either way.
func Normalize(body map[string]any) []Option {
	var options []Option
	if raw, ok := payload.Array(body, "options"); ok {
		for _, item := range raw {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if opt, ok := fromOption(obj); ok {
				options = append(options, opt)
			}
		}
	} else if raw, ok := payload.Array(body, "all_results"); ok {
		for _, item := range raw {
			obj, ok := item.(map[string]any)
			if !ok || !selectable(obj) {
				continue
			}
			if opt, ok := fromResult(obj); ok {
				options = append(options, opt)
			}
		}
		sort.SliceStable(options, func(i, j int) bool { return options[i].Price < options[j].Price })
	}

	return singleCheapest(options)
}

func fromOption(obj map[string]any) (Option, bool) {
	price, ok := extractPrice(obj)
	if !ok {
		return Option{}, false
	}
	opt := Option{
		ID:        payload.First(obj, idFields...),
		Name:      payload.First(obj, nameFields...),
		Price:     price,
		ETA:       payload.First(obj, etaFields...),
		CarrierID: payload.First(obj, carrierIDFields...),
		ServiceID: payload.First(obj, serviceIDFields...),
		Tags:      tags(obj),
	}
	if opt.ID == "" {
		opt.ID = compositeID(opt.CarrierID, opt.ServiceID)
	}
	return opt, true
}

func fromResult(obj map[string]any) (Option, bool) {
	price, ok := extractPrice(obj)
	if !ok {
		return Option{}, false
	}
	opt := Option{
		Price:     price,
		ETA:       payload.First(obj, etaFields...),
		CarrierID: payload.First(obj, carrierIDFields...),
		ServiceID: payload.First(obj, serviceIDFields...),
		Tags:      tags(obj),
	}
	opt.ID = compositeID(opt.CarrierID, opt.ServiceID)

	name := strings.TrimSpace(payload.First(obj, carrierName...) + " " +
		payload.First(obj, payload.Field("service_name"), payload.Field("service.name")))
	if name == "" {
		name = payload.First(obj, payload.Field("name"))
	}
	opt.Name = name
	return opt, true
}

func compositeID(carrierID, serviceID string) string {
	return carrierID + "_" + serviceID
}

func selectable(obj map[string]any) bool {
	v, ok := payload.Lookup(obj, "selectable")
	if !ok {
		return true
	}
	b, isBool := v.(bool)
	return !isBool || b
}

// extractPrice reads the first present price field and rounds it to whole
// currency units. Only positive prices count.
func extractPrice(obj map[string]any) (int64, bool) {
	for _, field := range priceFields {
		v, ok := payload.Lookup(obj, field)
		if !ok {
			continue
		}
		s, ok := payload.String(v)
		if !ok || s == "" {
			continue
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			continue
		}
		price := d.Round(0).IntPart()
		return price, price > 0
	}
	return 0, false
}

func tags(obj map[string]any) []string {
	out := []string{}
	raw, ok := payload.Array(obj, "tags")
	if !ok {
		return out
	}
	for _, t := range raw {
		if s, ok := payload.String(t); ok && s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}

// singleCheapest strips the cheapest tag from every option but the first
// carrying it.
func singleCheapest(options []Option) []Option {
	seen := false
	for i := range options {
		if !options[i].HasTag(TagCheapest) {
			continue
		}
		if !seen {
			seen = true
			continue
		}
		kept := options[i].Tags[:0:0]
		for _, t := range options[i].Tags {
			if t != TagCheapest {
				kept = append(kept, t)
			}
		}
		options[i].Tags = kept
	}
	return options
}

// Select returns the cheapest-tagged option, or the first one.
func Select(options []Option) (Option, bool) {
	for _, o := range options {
		if o.HasTag(TagCheapest) {
			return o, true
		}
	}
	if len(options) == 0 {
		return Option{}, false
	}
	return options[0], true
}
