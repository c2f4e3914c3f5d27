package compress

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/ajitpratap0/bcifpack/pkg/bcif"
)

// workerCount resolves the configured worker setting.
func (c *Compressor) workerCount() int {
	if c.cfg.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.cfg.Workers
}

// columnJob addresses one column within the file hierarchy.
type columnJob struct {
	block    string
	category string
	column   string
	col      *bcif.Column
}

// compressFileParallel compresses every column of the file on a worker pool.
// Each column's search is independent of its siblings, so the work is
// distributed per column and the hierarchy is reassembled afterwards in the
// original key order. The output is identical to the sequential walk.
func (c *Compressor) compressFileParallel(f *bcif.File, workers int) (*bcif.File, error) {
	var jobs []columnJob
	for _, blockName := range f.Names() {
		block, _ := f.Get(blockName)
		for _, catName := range block.Names() {
			cat, _ := block.Get(catName)
			for _, colName := range cat.Names() {
				col, _ := cat.Get(colName)
				jobs = append(jobs, columnJob{
					block:    blockName,
					category: catName,
					column:   colName,
					col:      col,
				})
			}
		}
	}

	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		workers = 1
	}
	c.log.Debug("compressing file",
		zap.Int("columns", len(jobs)),
		zap.Int("workers", workers))

	results := make([]*bcif.Column, len(jobs))
	errs := make([]error, len(jobs))
	jobCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobCh {
				results[i], errs[i] = c.CompressColumn(jobs[i].col)
			}
		}()
	}
	for i := range jobs {
		jobCh <- i
	}
	close(jobCh)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			c.log.Error("column compression failed",
				zap.String("block", jobs[i].block),
				zap.String("category", jobs[i].category),
				zap.String("column", jobs[i].column),
				zap.Error(err))
			return nil, err
		}
	}

	out := bcif.NewFile()
	idx := 0
	for _, blockName := range f.Names() {
		block, _ := f.Get(blockName)
		outBlock := bcif.NewBlock()
		for _, catName := range block.Names() {
			cat, _ := block.Get(catName)
			outCat := bcif.NewCategory()
			for range cat.Names() {
				outCat.Set(jobs[idx].column, results[idx])
				idx++
			}
			outBlock.Set(catName, outCat)
		}
		out.Set(blockName, outBlock)
	}
	return out, nil
}
