package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/onerilhan/guild-payout-api/internal/models"
)

// ErrEmptyFile dosyada header satırı bile yoksa döner
var ErrEmptyFile = fmt.Errorf("%w: CSV dosyası boş", models.ErrInvalidInput)

// columnKey header'ı karşılaştırma için normalize eder: küçük harf, _ - ve boşluk yok
func columnKey(header string) string {
	header = strings.TrimPrefix(header, "\ufeff")
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(header)))
}

// row header'a göre hücre erişimi
type row struct {
	line   int
	index  map[string]int
	fields []string
}

func (r row) get(key string) (string, bool) {
	i, ok := r.index[key]
	if !ok || i >= len(r.fields) {
		return "", false
	}
	v := strings.TrimSpace(r.fields[i])
	return v, v != ""
}

func (r row) fail(column string, err error) error {
	return fmt.Errorf("%w: satır %d, kolon %q: %v", models.ErrInvalidInput, r.line, column, err)
}

func (r row) decimal(key string) (decimal.Decimal, error) {
	v, ok := r.get(key)
	if !ok {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, r.fail(key, err)
	}
	return d, nil
}

func (r row) float(key string) (float64, error) {
	v, ok := r.get(key)
	if !ok {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, r.fail(key, err)
	}
	return f, nil
}

func (r row) time(key string) (models.FlexTime, error) {
	v, _ := r.get(key)
	t, err := models.ParseFlexTime(v)
	if err != nil {
		return models.FlexTime{}, r.fail(key, err)
	}
	return t, nil
}

func (r row) str(key string) string {
	v, _ := r.get(key)
	return v
}

// readRows header'ı okur ve her veri satırı için fn'i çağırır.
// Tamamen boş satırlar atlanır.
func readRows(src io.Reader, fn func(r row) error) error {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return ErrEmptyFile
	}
	if err != nil {
		return fmt.Errorf("%w: CSV header okunamadı: %v", models.ErrInvalidInput, err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[columnKey(h)] = i
	}

	for line := 2; ; line++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: CSV satır %d okunamadı: %v", models.ErrInvalidInput, line, err)
		}
		if isBlank(fields) {
			continue
		}
		if err := fn(row{line: line, index: index, fields: fields}); err != nil {
			return err
		}
	}
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// ParseMembers üye CSV'sini okur. username zorunludur; payout boşsa 0,
// tarih kolonları boşsa sıfır değer kalır ve service tarafından doldurulur.
func ParseMembers(src io.Reader) ([]*models.Member, error) {
	members := make([]*models.Member, 0)

	err := readRows(src, func(r row) error {
		username, ok := r.get("username")
		if !ok {
			return r.fail("username", errors.New("boş olamaz"))
		}

		payout, err := r.decimal("payout")
		if err != nil {
			return err
		}
		lastDue, err := r.time("lastpayoutdue")
		if err != nil {
			return err
		}
		joined, err := r.time("datejoined")
		if err != nil {
			return err
		}

		members = append(members, &models.Member{
			Username:      username,
			Payout:        models.RoundPayout(payout),
			LastPayoutDue: lastDue.Time,
			DateJoined:    joined.Time,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return members, nil
}

// priceFloatColumns normalize edilmiş kolon adı -> Price alanı
func priceFloatColumns(p *models.Price) map[string]*float64 {
	return map[string]*float64{
		"t7":   &p.T7,
		"t8":   &p.T8,
		"bw43": &p.BW43,
		"bw52": &p.BW52,
		"bw53": &p.BW53,
		"bw61": &p.BW61,
		"bw62": &p.BW62,
		"fs43": &p.FS43,
		"fs52": &p.FS52,
		"fs53": &p.FS53,
		"fs61": &p.FS61,
		"fs62": &p.FS62,
	}
}

// ParsePrices fiyat CSV'sini okur. Sayısal kolonlar boşsa 0 olur.
func ParsePrices(src io.Reader) ([]*models.Price, error) {
	prices := make([]*models.Price, 0)

	err := readRows(src, func(r row) error {
		p := &models.Price{
			ItemName:        r.str("itemname"),
			Timing:          r.str("timing"),
			AlternativeTier: r.str("alternativetier"),
		}

		for key, dst := range priceFloatColumns(p) {
			v, err := r.float(key)
			if err != nil {
				return err
			}
			*dst = v
		}

		var err error
		if p.BWLastChecked, err = r.time("bwlastchecked"); err != nil {
			return err
		}
		if p.FSLastChecked, err = r.time("fslastchecked"); err != nil {
			return err
		}

		prices = append(prices, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return prices, nil
}
