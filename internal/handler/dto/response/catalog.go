package response

import (
	"rental-pos/internal/usecase/queries"
)

type ZoneResponse struct {
	Key   string             `json:"key"`
	Label string             `json:"label"`
	Items []ZoneItemResponse `json:"items"`
}

type ZoneItemResponse struct {
	ID                string `json:"id"`
	Label             string `json:"label"`
	DefaultPriceCents int64  `json:"default_price_cents"`
}

func FromZoneViews(views []*queries.ZoneView) []*ZoneResponse {
	res := make([]*ZoneResponse, len(views))
	for i, v := range views {
		items := make([]ZoneItemResponse, len(v.Items))
		for j, it := range v.Items {
			items[j] = ZoneItemResponse{
				ID:                it.ID.String(),
				Label:             it.Label,
				DefaultPriceCents: it.DefaultPriceCents,
			}
		}
		res[i] = &ZoneResponse{Key: v.Key, Label: v.Label, Items: items}
	}
	return res
}

type ProductResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

func FromProductViews(views []*queries.ProductView) []*ProductResponse {
	res := make([]*ProductResponse, len(views))
	for i, v := range views {
		res[i] = &ProductResponse{ID: v.ID.String(), Name: v.Name, PriceCents: v.PriceCents}
	}
	return res
}

type CreatedResponse struct {
	ID string `json:"id"`
}
