package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"shopverse/internal/domain"
	"shopverse/internal/service/catalog"
)

// ProductWriter is the part of the catalog the importer writes through, so
// imported rows get the same validation and owner stamping as the API.
type ProductWriter interface {
	CreateProduct(ctx context.Context, admin domain.Admin, in catalog.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, admin domain.Admin, id int64, patch catalog.ProductPatch) (*domain.Product, error)
}

// CSVImporter reads product rows and creates or updates them for one admin.
//
// Recognised columns: id, name, price, category, stock, description, image.
// Rows with an id that exists update that product; all others create one.
type CSVImporter struct {
	reader  *csv.Reader
	catalog ProductWriter
	admin   domain.Admin
}

func NewCSVImporter(r io.Reader, catalog ProductWriter, admin domain.Admin) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:  csvr,
		catalog: catalog,
		admin:   admin,
	}
}

// Result counts what Run did.
type Result struct {
	Created int
	Updated int
}

type csvRow struct {
	line  int
	id    int64
	input catalog.ProductInput
}

// Run parses every row and writes it. It stops at the first bad row; rows
// before it stay imported.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result

	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return res, fmt.Errorf("%w: missing name column", domain.ErrInvalidInput)
	}

	for line := 2; ; line++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row %d: %w", line, err)
		}

		row, err := parseRow(record, index, line)
		if err != nil {
			return res, err
		}
		if row == nil {
			continue
		}

		created, err := i.save(ctx, row)
		if err != nil {
			return res, err
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}
	return res, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) (bool, error) {
	if row.id != 0 {
		in := row.input
		_, err := i.catalog.UpdateProduct(ctx, i.admin, row.id, catalog.ProductPatch{
			Name:        &in.Name,
			Price:       &in.Price,
			Category:    &in.Category,
			Stock:       &in.Stock,
			Description: &in.Description,
			Image:       &in.Image,
		})
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return false, fmt.Errorf("row %d: update product %d: %w", row.line, row.id, err)
		}
	}
	if _, err := i.catalog.CreateProduct(ctx, i.admin, row.input); err != nil {
		return false, fmt.Errorf("row %d: create product %q: %w", row.line, row.input.Name, err)
	}
	return true, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int, line int) (*csvRow, error) {
	name := pick(record, index, "name")
	if name == "" {
		allBlank := true
		for _, v := range record {
			if strings.TrimSpace(v) != "" {
				allBlank = false
				break
			}
		}
		if allBlank {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: row %d: name required", domain.ErrInvalidInput, line)
	}

	row := &csvRow{line: line, input: catalog.ProductInput{
		Name:        name,
		Category:    pick(record, index, "category"),
		Description: pick(record, index, "description"),
		Image:       pick(record, index, "image"),
	}}

	if v := pick(record, index, "id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: id %q", domain.ErrInvalidInput, line, v)
		}
		row.id = id
	}
	if v := pick(record, index, "price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: price %q", domain.ErrInvalidInput, line, v)
		}
		row.input.Price = price
	}
	if v := pick(record, index, "stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: stock %q", domain.ErrInvalidInput, line, v)
		}
		row.input.Stock = stock
	}
	return row, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
