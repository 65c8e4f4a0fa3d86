package classify

import "hrimport/employee"

// Batch is the outcome of classifying a normalized batch by natural key.
type Batch struct {
	ToInsert          []employee.Record
	DuplicatesInFile  []employee.Record
	DuplicatesInStore []employee.Record
}

// Skipped is the number of records dropped as duplicates.
func (b Batch) Skipped() int {
	return len(b.DuplicatesInFile) + len(b.DuplicatesInStore)
}

// DedupeByNationalID keeps the first record per national ID, in input order.
func DedupeByNationalID(records []employee.Record) (unique, duplicates []employee.Record) {
	unique = make([]employee.Record, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if _, ok := seen[record.NationalID]; ok {
			duplicates = append(duplicates, record)
			continue
		}
		seen[record.NationalID] = struct{}{}
		unique = append(unique, record)
	}
	return unique, duplicates
}

// ClassifyImportBatch deduplicates records within the batch first, then drops
// those whose national ID the store already holds.
func ClassifyImportBatch(records []employee.Record, existing map[string]struct{}) Batch {
	unique, inFile := DedupeByNationalID(records)

	batch := Batch{
		ToInsert:         make([]employee.Record, 0, len(unique)),
		DuplicatesInFile: inFile,
	}
	for _, candidate := range unique {
		if _, stored := existing[candidate.NationalID]; stored {
			batch.DuplicatesInStore = append(batch.DuplicatesInStore, candidate)
			continue
		}
		batch.ToInsert = append(batch.ToInsert, candidate)
	}
	return batch
}
