package controllers

import (
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/page"
	"github.com/angelmondragon/storefront/pkg/money"
	"github.com/angelmondragon/storefront/pkg/types"
)

type productResponse struct {
	ID          types.ProductID `json:"id"`
	Title       string          `json:"title"`
	Price       string          `json:"price"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      catalog.Rating  `json:"rating"`
	Stars       []string        `json:"stars"`
	Href        string          `json:"href"`
}

func newProductResponse(p catalog.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price.StringFixed(2),
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Rating:      p.Rating,
		Stars:       catalog.Stars(p.Rating.Rate).Glyphs(),
		Href:        catalog.DetailPath(p.ID),
	}
}

type productListResponse struct {
	Products []productResponse `json:"products"`
	Page     int               `json:"page"`
	HasMore  bool              `json:"has_more"`
	Total    int               `json:"total"`
	Query    string            `json:"query,omitempty"`
}

type cartItemResponse struct {
	ID        types.ProductID `json:"id"`
	Title     string          `json:"title"`
	Price     string          `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	LineTotal string          `json:"line_total"`
}

type bannerResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

type cartResponse struct {
	Items    []cartItemResponse `json:"items"`
	Count    int                `json:"count"`
	Subtotal string             `json:"subtotal"`
	Shipping string             `json:"shipping"`
	Total    string             `json:"total"`
	Banners  []bannerResponse   `json:"banners,omitempty"`
	CartHTML string             `json:"cart_html,omitempty"`
}

func newCartResponse(items []cart.Item, totals cart.Totals, banners []page.Banner) cartResponse {
	resp := cartResponse{
		Items:    make([]cartItemResponse, 0, len(items)),
		Count:    totals.Count,
		Subtotal: money.Format(totals.Subtotal),
		Shipping: money.Format(totals.Shipping),
		Total:    money.Format(totals.Total),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, cartItemResponse{
			ID:        item.ID,
			Title:     item.Title,
			Price:     money.Format(item.Price),
			Image:     item.Image,
			Quantity:  item.Quantity,
			LineTotal: money.Format(item.LineTotal()),
		})
	}
	for _, b := range banners {
		resp.Banners = append(resp.Banners, bannerResponse{Message: b.Message, Kind: string(b.Kind)})
	}
	return resp
}

type addCartItemRequest struct {
	ProductID types.ProductID `json:"product_id" validate:"required"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
