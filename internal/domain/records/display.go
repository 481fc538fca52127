package records

import (
	"sort"
	"strconv"
	"strings"
)

const Placeholder = "—"

// ShortDate truncates store timestamps to the YYYY-MM-DD prefix.
func ShortDate(value string) string {
	if len(value) > len(DateLayout) {
		return value[:len(DateLayout)]
	}
	return value
}

// ContractLabel summarises the latest contract of a listed employee.
func ContractLabel(e Employee) string {
	switch e.ContractType {
	case ContractTypePermanent:
		return "Permanent"
	case "":
		return "No contract"
	}
	end := ""
	if e.ContractEnd != nil {
		end = ShortDate(*e.ContractEnd)
	}
	return "Contract (until " + end + ")"
}

// SortedByStartDesc returns a copy of contracts ordered newest first. The
// input slice is left untouched.
func SortedByStartDesc(contracts []Contract) []Contract {
	out := make([]Contract, len(contracts))
	copy(out, contracts)
	sort.SliceStable(out, func(i, j int) bool {
		left, right := ShortDate(out[i].ContractStart), ShortDate(out[j].ContractStart)
		if left == right {
			return out[i].ID > out[j].ID
		}
		return left > right
	})
	return out
}

func OrPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}

func FormatEnd(end *string) string {
	if end == nil {
		return Placeholder
	}
	return OrPlaceholder(ShortDate(*end))
}

func FormatHours(hours *int) string {
	if hours == nil {
		return Placeholder
	}
	return strconv.Itoa(*hours)
}

// FormatSalary renders a salary with thousands separators, e.g. £42,500.
func FormatSalary(salary *float64) string {
	if salary == nil {
		return Placeholder
	}
	raw := strconv.FormatFloat(*salary, 'f', -1, 64)
	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign, raw = "-", raw[1:]
	}
	whole, frac, _ := strings.Cut(raw, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + "£" + b.String()
}
