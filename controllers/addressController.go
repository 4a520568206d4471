package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tarelfish/tarel-api/apperrors"
	"github.com/tarelfish/tarel-api/services"
)

// AddressController exposes the getAddress.io lookup proxy.
type AddressController struct {
	addresses *services.AddressService
}

func NewAddressController(addresses *services.AddressService) *AddressController {
	return &AddressController{addresses: addresses}
}

type autocompleteQuery struct {
	Top          *int   `form:"top"`
	IncludeAll   *bool  `form:"all"`
	ShowPostcode *bool  `form:"show_postcode"`
	Template     string `form:"template"`

	FilterCounty      string `form:"filter_county"`
	FilterCountry     string `form:"filter_country"`
	FilterLocality    string `form:"filter_locality"`
	FilterDistrict    string `form:"filter_district"`
	FilterTownOrCity  string `form:"filter_town_or_city"`
	FilterPostcode    string `form:"filter_postcode"`
	FilterResidential *bool  `form:"filter_residential"`

	RadiusKm        *float64 `form:"radius_km"`
	RadiusLatitude  *float64 `form:"radius_latitude"`
	RadiusLongitude *float64 `form:"radius_longitude"`

	LocationLatitude  *float64 `form:"location_latitude"`
	LocationLongitude *float64 `form:"location_longitude"`
}

func (c *AddressController) Autocomplete(ctx *gin.Context) {
	var query autocompleteQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		apperrors.Respond(ctx, apperrors.Validation(err.Error()))
		return
	}

	result, err := c.addresses.Autocomplete(ctx.Request.Context(), services.AutocompleteParams{
		Term:         ctx.Param("term"),
		Top:          query.Top,
		IncludeAll:   query.IncludeAll,
		ShowPostcode: query.ShowPostcode,
		Template:     query.Template,

		FilterCounty:      query.FilterCounty,
		FilterCountry:     query.FilterCountry,
		FilterLocality:    query.FilterLocality,
		FilterDistrict:    query.FilterDistrict,
		FilterTownOrCity:  query.FilterTownOrCity,
		FilterPostcode:    query.FilterPostcode,
		FilterResidential: query.FilterResidential,

		RadiusKm:        query.RadiusKm,
		RadiusLatitude:  query.RadiusLatitude,
		RadiusLongitude: query.RadiusLongitude,

		LocationLatitude:  query.LocationLatitude,
		LocationLongitude: query.LocationLongitude,
	})
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *AddressController) Get(ctx *gin.Context) {
	result, err := c.addresses.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
