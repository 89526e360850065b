package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	domainErrors "github.com/polkiloo/orderrelay/internal/domain/errors"
	"github.com/polkiloo/orderrelay/internal/domain/model"
)

// AssertRequired returns the trimmed value, rejecting missing, non-string or blank input.
func AssertRequired(field string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		if value == nil {
			return "", domainErrors.Invalid(field, "is required")
		}
		return "", domainErrors.Invalid(field, "must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domainErrors.Invalid(field, "is required")
	}
	return s, nil
}

// ParseServiceMethod maps DELIVERY/CARRYOUT in any casing to the upstream spelling.
func ParseServiceMethod(raw string) (model.ServiceMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DELIVERY":
		return model.ServiceMethodDelivery, nil
	case "CARRYOUT":
		return model.ServiceMethodCarryout, nil
	default:
		return "", domainErrors.Invalid("serviceMethod", fmt.Sprintf("unrecognized value %q, expected DELIVERY or CARRYOUT", raw))
	}
}

// BuildAddress validates raw address fields and derives the upstream address shape.
func BuildAddress(fields model.AddressFields) (model.Address, error) {
	line1, err := AssertRequired("street", fields.Line1)
	if err != nil {
		return model.Address{}, err
	}
	city, err := AssertRequired("city", fields.City)
	if err != nil {
		return model.Address{}, err
	}
	region, err := AssertRequired("region", fields.Region)
	if err != nil {
		return model.Address{}, err
	}
	postal, err := AssertRequired("postalCode", fields.PostalCode)
	if err != nil {
		return model.Address{}, err
	}

	line2 := strings.TrimSpace(fields.Line2)
	addr := model.Address{
		Street:     line1,
		StreetName: StreetName(line1),
		City:       strings.ToUpper(city),
		Region:     strings.ToUpper(region),
		PostalCode: postal,
		Type:       model.AddressTypeHouse,
		Line1:      line1,
	}
	if line2 != "" {
		addr.Street = line1 + " " + line2
		addr.Type = model.AddressTypeApartment
	}
	return addr, nil
}

var houseNumber = regexp.MustCompile(`^\d+[A-Za-z]?(-\d+[A-Za-z]?)?$`)

var unitMarkers = map[string]struct{}{
	"APT":       {},
	"APARTMENT": {},
	"UNIT":      {},
	"STE":       {},
	"SUITE":     {},
	"FL":        {},
	"FLOOR":     {},
	"RM":        {},
	"ROOM":      {},
	"BLDG":      {},
}

// StreetName drops a leading house number and everything from the first unit marker on.
// When nothing is left the trimmed line is returned unchanged.
func StreetName(line string) string {
	line = strings.TrimSpace(line)
	tokens := strings.Fields(line)
	if len(tokens) > 0 && houseNumber.MatchString(tokens[0]) {
		tokens = tokens[1:]
	}
	for i, tok := range tokens {
		if strings.HasPrefix(tok, "#") {
			tokens = tokens[:i]
			break
		}
		if _, ok := unitMarkers[strings.ToUpper(strings.TrimRight(tok, ".,"))]; ok {
			tokens = tokens[:i]
			break
		}
	}
	name := strings.Join(tokens, " ")
	if name == "" {
		return line
	}
	return name
}

var knownItemKeys = map[string]struct{}{
	"code": {}, "Code": {},
	"quantity": {}, "qty": {}, "Qty": {},
	"id": {}, "ID": {},
	"isNew": {},
}

// ParseLineItems decodes a JSON array of items, validating code and quantity and keeping
// unrecognised fields for upstream.
func ParseLineItems(jsonText string) ([]model.LineItem, error) {
	if !gjson.Valid(jsonText) {
		return nil, domainErrors.Invalid("items", "must be valid JSON")
	}
	parsed := gjson.Parse(jsonText)
	if !parsed.IsArray() {
		return nil, domainErrors.Invalid("items", "must be a JSON array")
	}
	elements := parsed.Array()
	if len(elements) == 0 {
		return nil, domainErrors.Invalid("items", "must contain at least one item")
	}

	items := make([]model.LineItem, 0, len(elements))
	for i, el := range elements {
		field := fmt.Sprintf("items[%d]", i)
		if !el.IsObject() {
			return nil, domainErrors.Invalid(field, "must be an object")
		}

		code := firstPresent(el, "code", "Code")
		if code.Type != gjson.String || strings.TrimSpace(code.Str) == "" {
			return nil, domainErrors.Invalid(field+".code", "must be a non-empty string")
		}

		qty, err := parseQuantity(firstPresent(el, "quantity", "qty", "Qty"))
		if err != nil {
			return nil, domainErrors.Invalid(field+".quantity", err.Error())
		}

		var id any = i + 1
		if raw := firstPresent(el, "id", "ID"); raw.Exists() && raw.Type != gjson.Null {
			id = raw.Value()
		}

		var extra map[string]json.RawMessage
		if err := json.Unmarshal([]byte(el.Raw), &extra); err != nil {
			return nil, domainErrors.Invalid(field, "must be an object")
		}
		for key := range extra {
			if _, known := knownItemKeys[key]; known {
				delete(extra, key)
			}
		}

		items = append(items, model.LineItem{
			Code:  strings.TrimSpace(code.Str),
			Qty:   qty,
			ID:    id,
			IsNew: el.Get("isNew").Bool(),
			Extra: extra,
		})
	}
	return items, nil
}

func parseQuantity(raw gjson.Result) (int, error) {
	var f float64
	switch raw.Type {
	case gjson.Number:
		f = raw.Num
	case gjson.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw.Str), 64)
		if err != nil {
			return 0, errors.New("must be a number")
		}
		f = v
	default:
		return 0, errors.New("must be a positive number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("must be finite")
	}
	qty := math.Floor(f)
	if qty < 1 {
		return 0, errors.New("must be at least 1")
	}
	if qty > math.MaxInt32 {
		return 0, errors.New("is too large")
	}
	return int(qty), nil
}

func firstPresent(res gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := res.Get(p); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}
