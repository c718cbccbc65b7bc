package processor

import (
	"path/filepath"
	"sync"

	"github.com/phambaophuc/image-autocrop/internal/models"
)

// CropFiles runs CropFile over paths with up to workers files in flight.
// Repeated paths are cropped once. Results keep the order in which paths
// first appear.
func (p *ImageProcessor) CropFiles(paths []string, req *models.CropRequest, workers int) []models.CropResult {
	unique := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		unique = append(unique, clean)
	}

	results := make([]models.CropResult, len(unique))
	if len(unique) == 0 {
		return results
	}

	numWorkers := workers
	if numWorkers < 1 {
		numWorkers = 1
	}
	if len(unique) < numWorkers {
		numWorkers = len(unique)
	}

	jobs := make(chan int, len(unique))
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				report, err := p.CropFile(unique[i], req)
				results[i] = models.CropResult{Path: unique[i], Report: report, Err: err}
			}
		}()
	}

	for i := range unique {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}
