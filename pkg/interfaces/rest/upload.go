package rest

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/planbeam/solver/pkg/application/services/masterdata"
	"github.com/planbeam/solver/pkg/domain/entities"
)

// uploadTable identifies which master-data table an uploaded file feeds
type uploadTable string

const (
	tableDemand    uploadTable = "demand"
	tableItems     uploadTable = "items"
	tableBOM       uploadTable = "bom"
	tableSuppliers uploadTable = "supplier_master"
	tableResources uploadTable = "resources"
	tableStock     uploadTable = "supplies"
)

// tablePatterns maps filename substrings to tables. Order matters:
// supplier files would otherwise hit the item master's "master" pattern.
var tablePatterns = []struct {
	table    uploadTable
	patterns []string
}{
	{tableDemand, []string{"demand", "sales"}},
	{tableSuppliers, []string{"supplier_master", "suppliermaster", "supplier", "vendor"}},
	{tableBOM, []string{"bom", "bill", "structure"}},
	{tableResources, []string{"resource"}},
	{tableStock, []string{"supplies", "stock", "inventory"}},
	{tableItems, []string{"item", "article", "product", "master"}},
}

// collectFiles flattens every file field of the form; clients differ on
// whether they post one "files" field or one field per file.
func collectFiles(form *multipart.Form) []*multipart.FileHeader {
	var files []*multipart.FileHeader
	for _, headers := range form.File {
		files = append(files, headers...)
	}
	return files
}

// classifyUpload maps an uploaded filename to its master-data table
func classifyUpload(filename string) (uploadTable, bool) {
	lower := strings.ToLower(filename)
	for _, entry := range tablePatterns {
		for _, pattern := range entry.patterns {
			if strings.Contains(lower, pattern) {
				return entry.table, true
			}
		}
	}
	return "", false
}

// loadUploads parses the recognized multipart files into a fresh set of
// in-memory repositories. Unrecognized files are skipped with a log
// line rather than failing the run.
func loadUploads(files []*multipart.FileHeader, maxBytes int64, logf func(string, ...interface{})) (*masterdata.Dataset, error) {
	dataset := masterdata.NewDataset()
	seen := make(map[uploadTable]bool)

	for _, header := range files {
		table, ok := classifyUpload(header.Filename)
		if !ok {
			logf("Skipping upload %q: no table pattern matched", header.Filename)
			continue
		}
		if seen[table] {
			logf("Skipping upload %q: table %s already loaded", header.Filename, table)
			continue
		}
		if maxBytes > 0 && header.Size > maxBytes {
			return nil, fmt.Errorf("%w: upload %q exceeds %d bytes", entities.ErrInvalidInput, header.Filename, maxBytes)
		}

		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening upload %q: %v", entities.ErrInvalidInput, header.Filename, err)
		}
		err = parseUpload(dataset, table, file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing upload %q: %w", header.Filename, err)
		}

		seen[table] = true
		logf("Upload %q mapped to table %s", header.Filename, table)
	}

	if !seen[tableItems] {
		return nil, fmt.Errorf("%w: no item master file uploaded", entities.ErrInvalidInput)
	}
	if !seen[tableDemand] {
		return nil, fmt.Errorf("%w: no demand file uploaded", entities.ErrInvalidInput)
	}

	return dataset, nil
}

func parseUpload(dataset *masterdata.Dataset, table uploadTable, r io.Reader) error {
	switch table {
	case tableItems:
		items, err := dataset.Loader.ParseItems(r)
		if err != nil {
			return err
		}
		return dataset.Items.LoadItems(items)
	case tableBOM:
		edges, err := dataset.Loader.ParseBOM(r)
		if err != nil {
			return err
		}
		return dataset.BOM.LoadEdges(edges)
	case tableDemand:
		demands, err := dataset.Loader.ParseDemands(r)
		if err != nil {
			return err
		}
		return dataset.Demands.LoadDemands(demands)
	case tableSuppliers:
		offers, err := dataset.Loader.ParseSupplierOffers(r)
		if err != nil {
			return err
		}
		return dataset.Suppliers.LoadOffers(offers)
	case tableResources:
		resources, err := dataset.Loader.ParseResources(r)
		if err != nil {
			return err
		}
		return dataset.Resources.LoadResources(resources)
	case tableStock:
		balances, err := dataset.Loader.ParseStockBalances(r)
		if err != nil {
			return err
		}
		return dataset.Stock.LoadBalances(balances)
	}
	return nil
}

