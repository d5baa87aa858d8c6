package rates

import "strings"

// Variant is a deployment flavor: which rate sheets get loaded and which
// option display names map to which sheet. Option names are matched exactly
// as Tienda Nube sends them. Both flavors share one engine; previously they
// were maintained as separate deployments.
type Variant struct {
	Name          string
	RateSheets    []string
	SheetByOption map[string]string
}

// FullVariant maps every modality the carrier registers.
func FullVariant() Variant {
	return Variant{
		Name: "full",
		RateSheets: []string{
			"ANDREANI DOM",
			"ANDREANI SUC",
			"ANDREANI BIGGER A DOM",
			"CA DOM",
			"CA SUC",
			"OCA DOM",
			"OCA SUC",
			"URBANO",
		},
		SheetByOption: map[string]string{
			"ANDREANI A DOMICILIO":         "ANDREANI DOM",
			"ANDREANI A SUCURSAL":          "ANDREANI SUC",
			"CORREO ARGENTINO A DOMICILIO": "CA DOM",
			"CORREO ARGENTINO A SUCURSAL":  "CA SUC",
			"OCA A DOMICILIO":              "OCA DOM",
			"OCA A SUCURSAL":               "OCA SUC",
			"URBANO A DOMICILIO":           "URBANO",
			"ANDREANI BIGGER A DOM":        "ANDREANI BIGGER A DOM",
		},
	}
}

// SucursalVariant restricts quoting to the pickup-point modalities.
func SucursalVariant() Variant {
	return Variant{
		Name:       "sucursal",
		RateSheets: []string{"ANDREANI SUC", "CA SUC", "OCA SUC"},
		SheetByOption: map[string]string{
			"ANDREANI A SUCURSAL":         "ANDREANI SUC",
			"CORREO ARGENTINO A SUCURSAL": "CA SUC",
			"OCA A SUCURSAL":              "OCA SUC",
		},
	}
}

// VariantByName selects the deployment flavor; unknown names fall back to
// the full variant.
func VariantByName(name string) Variant {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sucursal":
		return SucursalVariant()
	default:
		return FullVariant()
	}
}
