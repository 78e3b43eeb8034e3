package response

import (
	"fmt"

	"rental-pos/internal/usecase/commands"
	"rental-pos/internal/usecase/queries"
)

type SessionResponse struct {
	ID               string                  `json:"id"`
	Room             string                  `json:"room"`
	CustomerName     string                  `json:"customer_name"`
	ZoneKey          string                  `json:"zone_key"`
	ItemID           string                  `json:"item_id"`
	ItemLabel        string                  `json:"item_label"`
	Status           string                  `json:"status"`
	StartTime        int64                   `json:"start_time"`
	EndTime          *int64                  `json:"end_time,omitempty"`
	CurrentRateCents int64                   `json:"current_rate_cents"`
	RateHistory      []RateChangeResponse    `json:"rate_history"`
	ProductCharges   []ProductChargeResponse `json:"product_charges"`
	Note             string                  `json:"note"`
	PaymentMethod    string                  `json:"payment_method"`
	AccruedCents     int64                   `json:"accrued_cents"`
	Accrued          string                  `json:"accrued"`
	AccruedAsOf      int64                   `json:"accrued_as_of"`
}

type RateChangeResponse struct {
	EffectiveFrom    int64 `json:"effective_from"`
	RatePerHourCents int64 `json:"rate_per_hour_cents"`
}

type ProductChargeResponse struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents"`
}

func FromSessionView(v *queries.SessionView) *SessionResponse {
	rates := make([]RateChangeResponse, len(v.RateHistory))
	for i, rc := range v.RateHistory {
		rates[i] = RateChangeResponse{
			EffectiveFrom:    rc.EffectiveFrom.Unix(),
			RatePerHourCents: rc.RatePerHourCents,
		}
	}
	charges := make([]ProductChargeResponse, len(v.ProductCharges))
	for i, pc := range v.ProductCharges {
		charges[i] = ProductChargeResponse{
			ProductID:      pc.ProductID.String(),
			Name:           pc.Name,
			Quantity:       pc.Quantity,
			UnitPriceCents: pc.UnitPriceCents,
			TotalCents:     pc.TotalCents,
		}
	}

	res := &SessionResponse{
		ID:               v.ID.String(),
		Room:             v.Room,
		CustomerName:     v.CustomerName,
		ZoneKey:          v.ZoneKey,
		ItemID:           v.ItemID.String(),
		ItemLabel:        v.ItemLabel,
		Status:           v.Status,
		StartTime:        v.StartTime.Unix(),
		CurrentRateCents: v.CurrentRateCents,
		RateHistory:      rates,
		ProductCharges:   charges,
		Note:             v.Note,
		PaymentMethod:    v.PaymentMethod,
		AccruedCents:     v.AccruedCents,
		Accrued:          FormatCents(v.AccruedCents),
		AccruedAsOf:      v.AccruedAsOf.Unix(),
	}
	if v.EndTime != nil {
		end := v.EndTime.Unix()
		res.EndTime = &end
	}
	return res
}

type SessionListItemResponse struct {
	ID           string `json:"id"`
	Room         string `json:"room"`
	CustomerName string `json:"customer_name"`
	ItemLabel    string `json:"item_label"`
	Status       string `json:"status"`
	StartTime    int64  `json:"start_time"`
	EndTime      *int64 `json:"end_time,omitempty"`
	AccruedCents int64  `json:"accrued_cents"`
	Accrued      string `json:"accrued"`
}

func FromSessionList(items []*queries.SessionListItem) []*SessionListItemResponse {
	res := make([]*SessionListItemResponse, len(items))
	for i, it := range items {
		r := &SessionListItemResponse{
			ID:           it.ID.String(),
			Room:         it.Room,
			CustomerName: it.CustomerName,
			ItemLabel:    it.ItemLabel,
			Status:       it.Status,
			StartTime:    it.StartTime.Unix(),
			AccruedCents: it.AccruedCents,
			Accrued:      FormatCents(it.AccruedCents),
		}
		if it.EndTime != nil {
			end := it.EndTime.Unix()
			r.EndTime = &end
		}
		res[i] = r
	}
	return res
}

type StartSessionResponse struct {
	SessionID string `json:"session_id"`
	StartTime int64  `json:"start_time"`
	RateCents int64  `json:"rate_cents"`
}

func FromStartResult(r *commands.StartSessionResult) *StartSessionResponse {
	return &StartSessionResponse{
		SessionID: r.SessionID.String(),
		StartTime: r.StartTime.Unix(),
		RateCents: r.RateCents,
	}
}

type FinalizeResponse struct {
	SessionID  string `json:"session_id"`
	EndTime    int64  `json:"end_time"`
	TotalCents int64  `json:"total_cents"`
	Total      string `json:"total"`
}

func FromFinalizeResult(r *commands.FinalizeResult) *FinalizeResponse {
	return &FinalizeResponse{
		SessionID:  r.SessionID.String(),
		EndTime:    r.EndTime.Unix(),
		TotalCents: r.TotalCents,
		Total:      FormatCents(r.TotalCents),
	}
}

// FormatCents renders a cent amount with two decimal places.
func FormatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
