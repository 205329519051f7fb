// Package pricelens extracts product/price records from the messy
// spreadsheets, PDFs, web exports and scans that suppliers actually send,
// without templates or per-supplier configuration. Structure is inferred
// from content: column roles come from header keywords and cell sampling,
// and extraction strategy follows the detected structure.
//
// Basic usage:
//
//	result, err := pricelens.Open("supplier.xlsx").Extract()
//	if err != nil {
//	    // handle error
//	}
//	for _, rec := range result.Records {
//	    fmt.Printf("%s: %.2f %s\n", rec.Product, rec.Price, rec.Unit)
//	}
//
// With options:
//
//	result, err := pricelens.Open("catalog.pdf").
//	    MaxRecords(100).
//	    ForceAllMethods().
//	    Extract()
//
// For advanced use cases, the lower-level packages (grid, structure,
// extract, cascade) are also available.
package pricelens
