package dto

// KitOptionDTO valor de un atributo; code es opcional.
type KitOptionDTO struct {
	Label string `json:"label"`
	Code  string `json:"code,omitempty"`
}

// KitAttributeDTO eje de variación.
type KitAttributeDTO struct {
	Name   string         `json:"name"`
	Values []KitOptionDTO `json:"values"`
}

// KitRequest cuerpo de POST /api/kits/generate.
type KitRequest struct {
	BaseSKU    string            `json:"base_sku"`
	Title      string            `json:"title"`
	Attributes []KitAttributeDTO `json:"attributes"`
	KitSizes   []int             `json:"kit_sizes"` // vacío = [1]
}

// KitSelectionDTO valor elegido dentro de una variante.
type KitSelectionDTO struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
	Code      string `json:"code"`
}

// KitVariantDTO SKU generado.
type KitVariantDTO struct {
	SKU     string            `json:"sku"`
	Name    string            `json:"name"`
	KitSize int               `json:"kit_size"`
	Options []KitSelectionDTO `json:"options"`
}

// KitResponse respuesta de la generación.
type KitResponse struct {
	Variants []KitVariantDTO `json:"variants"`
	Total    int             `json:"total"`
}

// KitSimulationRequest simula un kit de KitSize unidades a partir de los costos unitarios.
type KitSimulationRequest struct {
	KitSize int               `json:"kit_size"`
	Unit    SimulationRequest `json:"unit"`
}
