package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/guttosm/cart-service/internal/domain/model"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// productPayload is the product shape served by the storefront backend.
type productPayload struct {
	ID              int64               `json:"id"`
	Nombre          string              `json:"nombre"`
	PrecioBase      decimal.Decimal     `json:"precio_base"`
	PrecioDescuento decimal.NullDecimal `json:"precio_descuento"`
	Promociones     promotionList       `json:"promociones"`
	StockTalles     []stockPayload      `json:"stock_talles"`
}

type promotionPayload struct {
	ID          int64       `json:"id"`
	Tipo        string      `json:"tipo_promocion_nombre"`
	Valor       wireDecimal `json:"valor"`
	Activa      *bool       `json:"activa"`
	FechaInicio wireTime    `json:"fecha_inicio"`
	FechaFin    wireTime    `json:"fecha_fin"`
	Codigo      string      `json:"codigo"`
	EnvioGratis bool        `json:"envio_gratis"`

	// malformed is set when any field failed to parse. Such a promotion is
	// kept in place but never applied.
	malformed bool
}

// UnmarshalJSON never fails: bad promotion data must not drop the product
// it belongs to.
func (p *promotionPayload) UnmarshalJSON(data []byte) error {
	type plain promotionPayload
	var decoded plain
	err := json.Unmarshal(data, &decoded)
	*p = promotionPayload(decoded)
	p.malformed = err != nil || p.Valor.Invalid || p.FechaInicio.Invalid || p.FechaFin.Invalid
	return nil
}

// promotionList decodes to nil when the value is not an array.
type promotionList []promotionPayload

func (l *promotionList) UnmarshalJSON(data []byte) error {
	var items []promotionPayload
	if err := json.Unmarshal(data, &items); err != nil {
		*l = nil
		return nil
	}
	*l = items
	return nil
}

// wireDecimal is a nullable decimal that records unparseable input instead
// of failing the decode.
type wireDecimal struct {
	decimal.NullDecimal
	Invalid bool
}

func (d *wireDecimal) UnmarshalJSON(data []byte) error {
	if err := d.NullDecimal.UnmarshalJSON(data); err != nil {
		d.NullDecimal = decimal.NullDecimal{}
		d.Invalid = true
	}
	return nil
}

type stockPayload struct {
	TalleID     int64  `json:"talle_id"`
	TalleNombre string `json:"talle_nombre"`
	Cantidad    int    `json:"cantidad"`
}

type couponPayload struct {
	Valido bool             `json:"valido"`
	Promo  promotionPayload `json:"promo"`
}

// wireTime accepts RFC 3339 timestamps and the zone-less ISO form the
// backend emits. Zone-less values are read as UTC; anything else marks the
// value Invalid.
type wireTime struct {
	time.Time
	Set     bool
	Invalid bool
}

var wireTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (w *wireTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		w.Invalid = true
		return nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range wireTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			w.Time, w.Set = t, true
			return nil
		}
	}
	w.Invalid = true
	return nil
}

func (w wireTime) ptr() *time.Time {
	if !w.Set {
		return nil
	}
	t := w.Time
	return &t
}

func (p productPayload) toModel() model.Product {
	product := model.Product{
		ID:        p.ID,
		Name:      p.Nombre,
		BasePrice: p.PrecioBase,
	}
	if p.PrecioDescuento.Valid {
		discount := p.PrecioDescuento.Decimal
		product.DiscountPrice = &discount
	}

	for _, promo := range p.Promociones {
		if promo.malformed {
			log.Warn().Int64("product_id", p.ID).Int64("promotion_id", promo.ID).Msg("Ignoring malformed promotion")
		}
		product.Promotions = append(product.Promotions, promo.toModel())
	}

	// One row per color and size; availability is per size.
	index := make(map[int64]int)
	for _, st := range p.StockTalles {
		if i, ok := index[st.TalleID]; ok {
			product.Stock[i].Quantity += st.Cantidad
			continue
		}
		index[st.TalleID] = len(product.Stock)
		product.Stock = append(product.Stock, model.SizeStock{
			SizeID:   st.TalleID,
			SizeName: st.TalleNombre,
			Quantity: st.Cantidad,
		})
	}
	return product
}

func (p promotionPayload) toModel() model.Promotion {
	active := true
	if p.Activa != nil {
		active = *p.Activa
	}
	return model.Promotion{
		ID:       p.ID,
		Kind:     p.Tipo,
		Value:    p.Valor.Decimal,
		Active:   active && !p.malformed,
		StartsAt: p.FechaInicio.ptr(),
		EndsAt:   p.FechaFin.ptr(),
	}
}

func (c couponPayload) toModel(code string) model.Coupon {
	if c.Promo.Codigo != "" {
		code = c.Promo.Codigo
	}
	return model.Coupon{
		Code:         code,
		Kind:         c.Promo.Tipo,
		Value:        c.Promo.Valor.Decimal,
		FreeShipping: c.Promo.EnvioGratis,
	}
}
