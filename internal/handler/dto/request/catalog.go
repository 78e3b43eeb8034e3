package request

import (
	"rental-pos/internal/usecase/commands"
)

type CreateZoneRequest struct {
	Key   string `json:"key" binding:"required,max=50"`
	Label string `json:"label" binding:"required,max=100"`
}

func (r *CreateZoneRequest) ToInput() commands.AddZoneInput {
	return commands.AddZoneInput{Key: r.Key, Label: r.Label}
}

type CreateItemRequest struct {
	Label             string `json:"label" binding:"required,max=100"`
	DefaultPriceCents int64  `json:"default_price_cents" binding:"min=0"`
}

func (r *CreateItemRequest) ToInput() commands.AddItemInput {
	return commands.AddItemInput{Label: r.Label, DefaultPriceCents: r.DefaultPriceCents}
}

type UpdateItemRequest struct {
	Label             *string `json:"label" binding:"omitempty,max=100"`
	DefaultPriceCents *int64  `json:"default_price_cents" binding:"omitempty,min=0"`
}

func (r *UpdateItemRequest) ToInput() commands.UpdateItemInput {
	return commands.UpdateItemInput{Label: r.Label, DefaultPriceCents: r.DefaultPriceCents}
}

type CreateProductRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	PriceCents int64  `json:"price_cents" binding:"min=0"`
}

func (r *CreateProductRequest) ToInput() commands.AddProductInput {
	return commands.AddProductInput{Name: r.Name, PriceCents: r.PriceCents}
}

type UpdateProductRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	PriceCents *int64  `json:"price_cents" binding:"omitempty,min=0"`
}

func (r *UpdateProductRequest) ToInput() commands.UpdateProductInput {
	return commands.UpdateProductInput{Name: r.Name, PriceCents: r.PriceCents}
}
