package domain

// Category identifies one of the fixed expense categories
type Category string

const (
	CategoryComida     Category = "comida"
	CategoryTransporte Category = "transporte"
	CategoryServicios  Category = "servicios"
	CategoryCompras    Category = "compras"
	CategorySalud      Category = "salud"
	CategoryOcio       Category = "ocio"
	CategoryOtros      Category = "otros"
)

// CategoryInfo carries the display attributes of a category
type CategoryInfo struct {
	ID    Category `json:"id"`
	Name  string   `json:"name"`
	Emoji string   `json:"emoji"`
	Color string   `json:"color"`
}

// Categories is the fixed category set in canonical display order
var Categories = []CategoryInfo{
	{ID: CategoryComida, Name: "Comida", Emoji: "🍔", Color: "#f97316"},
	{ID: CategoryTransporte, Name: "Transporte", Emoji: "🚗", Color: "#3b82f6"},
	{ID: CategoryServicios, Name: "Servicios", Emoji: "💡", Color: "#eab308"},
	{ID: CategoryCompras, Name: "Compras", Emoji: "🛒", Color: "#a855f7"},
	{ID: CategorySalud, Name: "Salud", Emoji: "🏥", Color: "#ef4444"},
	{ID: CategoryOcio, Name: "Ocio", Emoji: "🎮", Color: "#ec4899"},
	{ID: CategoryOtros, Name: "Otros", Emoji: "📦", Color: "#6b7280"},
}

// CategoryByID returns the display info for a category, or nil for unknown values.
// Unknown categories are tolerated in stored data; they are simply not part of
// category-keyed groupings.
func CategoryByID(id Category) *CategoryInfo {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}

// IsKnownCategory reports whether id belongs to the fixed category set
func IsKnownCategory(id Category) bool {
	return CategoryByID(id) != nil
}
