package models

// Price bir item'ın kaynak bazlı (BW / FS) tier fiyatlarını tutar.
// Üzerinde hesaplama yapılmaz, olduğu gibi saklanır.
type Price struct {
	ID              int64    `json:"id" db:"id"`
	ItemName        string   `json:"itemName" db:"item_name"`
	Timing          string   `json:"timing" db:"timing"`
	T7              float64  `json:"T7" db:"t7"`
	T8              float64  `json:"T8" db:"t8"`
	BW43            float64  `json:"BW_4_3" db:"bw_4_3"`
	BW52            float64  `json:"BW_5_2" db:"bw_5_2"`
	BW53            float64  `json:"BW_5_3" db:"bw_5_3"`
	BW61            float64  `json:"BW_6_1" db:"bw_6_1"`
	BW62            float64  `json:"BW_6_2" db:"bw_6_2"`
	BWLastChecked   FlexTime `json:"BW_lastChecked" db:"bw_last_checked"`
	FS43            float64  `json:"FS_4_3" db:"fs_4_3"`
	FS52            float64  `json:"FS_5_2" db:"fs_5_2"`
	FS53            float64  `json:"FS_5_3" db:"fs_5_3"`
	FS61            float64  `json:"FS_6_1" db:"fs_6_1"`
	FS62            float64  `json:"FS_6_2" db:"fs_6_2"`
	FSLastChecked   FlexTime `json:"FS_last_Checked" db:"fs_last_checked"`
	AlternativeTier string   `json:"alternativeTier" db:"alternative_tier"`
}

// PricePatch kısmi fiyat güncellemesi
type PricePatch struct {
	ItemName        *string   `json:"itemName,omitempty"`
	Timing          *string   `json:"timing,omitempty"`
	T7              *float64  `json:"T7,omitempty"`
	T8              *float64  `json:"T8,omitempty"`
	BW43            *float64  `json:"BW_4_3,omitempty"`
	BW52            *float64  `json:"BW_5_2,omitempty"`
	BW53            *float64  `json:"BW_5_3,omitempty"`
	BW61            *float64  `json:"BW_6_1,omitempty"`
	BW62            *float64  `json:"BW_6_2,omitempty"`
	BWLastChecked   *FlexTime `json:"BW_lastChecked,omitempty"`
	FS43            *float64  `json:"FS_4_3,omitempty"`
	FS52            *float64  `json:"FS_5_2,omitempty"`
	FS53            *float64  `json:"FS_5_3,omitempty"`
	FS61            *float64  `json:"FS_6_1,omitempty"`
	FS62            *float64  `json:"FS_6_2,omitempty"`
	FSLastChecked   *FlexTime `json:"FS_last_Checked,omitempty"`
	AlternativeTier *string   `json:"alternativeTier,omitempty"`
}

// Apply patch'teki dolu alanları fiyata yazar
func (p *PricePatch) Apply(price *Price) {
	setString(&price.ItemName, p.ItemName)
	setString(&price.Timing, p.Timing)
	setString(&price.AlternativeTier, p.AlternativeTier)

	setFloat(&price.T7, p.T7)
	setFloat(&price.T8, p.T8)
	setFloat(&price.BW43, p.BW43)
	setFloat(&price.BW52, p.BW52)
	setFloat(&price.BW53, p.BW53)
	setFloat(&price.BW61, p.BW61)
	setFloat(&price.BW62, p.BW62)
	setFloat(&price.FS43, p.FS43)
	setFloat(&price.FS52, p.FS52)
	setFloat(&price.FS53, p.FS53)
	setFloat(&price.FS61, p.FS61)
	setFloat(&price.FS62, p.FS62)

	if p.BWLastChecked != nil {
		price.BWLastChecked = *p.BWLastChecked
	}
	if p.FSLastChecked != nil {
		price.FSLastChecked = *p.FSLastChecked
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
