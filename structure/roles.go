package structure

// ColumnRole is the semantic meaning assigned to a column.
type ColumnRole int

const (
	// RoleUnknown indicates no role could be assigned.
	RoleUnknown ColumnRole = iota
	// RoleProduct indicates a column of product names.
	RoleProduct
	// RolePrice indicates a column of prices.
	RolePrice
	// RoleUnit indicates a column of units of measure.
	RoleUnit
	// RoleCategory indicates a column of category labels.
	RoleCategory
	// RoleBrand indicates a column of brand names.
	RoleBrand
	// RoleSize indicates a column of sizes or weights.
	RoleSize
)

// String returns the string representation of the role.
func (r ColumnRole) String() string {
	switch r {
	case RoleProduct:
		return "product"
	case RolePrice:
		return "price"
	case RoleUnit:
		return "unit"
	case RoleCategory:
		return "category"
	case RoleBrand:
		return "brand"
	case RoleSize:
		return "size"
	default:
		return "unknown"
	}
}

// Evidence identifies what produced a column mapping.
type Evidence int

const (
	// EvidenceNone indicates no mapping was made.
	EvidenceNone Evidence = iota
	// EvidenceKeyword indicates an exact keyword match in the header.
	EvidenceKeyword
	// EvidenceFuzzyKeyword indicates a fuzzy (edit-distance) keyword match
	// in the header.
	EvidenceFuzzyKeyword
	// EvidenceContent indicates a content-based heuristic over sampled cells.
	EvidenceContent
)

// String returns the string representation of the evidence kind.
func (e Evidence) String() string {
	switch e {
	case EvidenceKeyword:
		return "keyword"
	case EvidenceFuzzyKeyword:
		return "fuzzy-keyword"
	case EvidenceContent:
		return "content"
	default:
		return "none"
	}
}

// DefaultKeywords returns the multilingual header keyword dictionary per
// role. Keywords are matched as substrings of the normalized header text,
// then fuzzily against whole header tokens.
func DefaultKeywords() map[ColumnRole][]string {
	return map[ColumnRole][]string{
		RoleProduct: {
			"product", "item", "name", "description", "goods", "sku", "model",
			"название", "товар", "наименование", "номенклатура", "позиция", "описание",
			"nama", "barang", "produk",
		},
		RolePrice: {
			"price", "cost", "amount", "rate", "usd", "eur", "idr",
			"цена", "стоимость", "сумма", "тариф", "прайс", "руб",
			"harga",
		},
		RoleUnit: {
			"unit", "measure", "qty", "uom", "pack",
			"единица", "ед.", "изм", "мера", "количество", "упаковка",
			"satuan",
		},
		RoleCategory: {
			"category", "type", "group", "section", "class",
			"категория", "тип", "группа", "раздел", "класс",
			"kategori",
		},
		RoleBrand: {
			"brand", "manufacturer", "maker", "vendor",
			"бренд", "марка", "производитель", "поставщик",
			"merek",
		},
		RoleSize: {
			"size", "weight", "volume", "dimension",
			"размер", "вес", "объем", "объём", "габарит",
			"ukuran",
		},
	}
}
