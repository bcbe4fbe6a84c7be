package filewatch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aguxez/fitplan/models"
)

// ParseFoods reads a pantry CSV. The header is "Food Name" with an optional
// "Price" column.
func ParseFoods(path string) ([]models.Food, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening foods file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	withPrice, err := checkFoodsHeader(header)
	if err != nil {
		return nil, err
	}
	columns := 1
	if withPrice {
		columns = 2
	}

	var foods []models.Food
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		if len(record) != columns {
			return nil, fmt.Errorf("invalid record format at line %d: %v", line, record)
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}

		food := models.Food{Name: name}
		if withPrice && strings.TrimSpace(record[1]) != "" {
			price, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
			if err != nil {
				return nil, fmt.Errorf("parsing price %s: %w", record[1], err)
			}
			if price < 0 {
				return nil, fmt.Errorf("negative price for %s at line %d", name, line)
			}
			food.Price = price
		}
		foods = append(foods, food)
	}

	return foods, nil
}

func checkFoodsHeader(header []string) (withPrice bool, err error) {
	switch {
	case len(header) == 1 && header[0] == "Food Name":
		return false, nil
	case len(header) == 2 && header[0] == "Food Name" && header[1] == "Price":
		return true, nil
	default:
		return false, fmt.Errorf("invalid header format: expected ['Food Name'] or ['Food Name' 'Price'], got %v", header)
	}
}
