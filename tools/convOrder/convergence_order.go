package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	studies := readCSV(csvFile)
	names := make([]string, 0, len(studies))
	for name := range studies {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cs := studies[name]
		cs.Sort()
		fmt.Printf("Scheme = %s\n", cs.scheme)
		fmt.Printf("%8s %14s %14s %8s %8s\n", "cells", "max_err", "rms_err", "p_max", "p_rms")
		for i := range cs.cells {
			if i == 0 {
				fmt.Printf("%8d %14.6e %14.6e %8s %8s\n",
					cs.cells[i], cs.maxErr[i], cs.rmsErr[i], "-", "-")
				continue
			}
			pMax := order(cs.cells[i-1], cs.cells[i], cs.maxErr[i-1], cs.maxErr[i])
			pRMS := order(cs.cells[i-1], cs.cells[i], cs.rmsErr[i-1], cs.rmsErr[i])
			fmt.Printf("%8d %14.6e %14.6e %8.2f %8.2f\n",
				cs.cells[i], cs.maxErr[i], cs.rmsErr[i], pMax, pRMS)
		}
	}
}

type ConvergenceStudy struct {
	scheme         string
	cells          []int
	maxErr, rmsErr []float64
}

func NewConvergenceStudy(scheme string) *ConvergenceStudy {
	return &ConvergenceStudy{
		scheme: scheme,
	}
}

func (cs *ConvergenceStudy) Add(cells int, maxErr, rmsErr float64) {
	cs.cells = append(cs.cells, cells)
	cs.maxErr = append(cs.maxErr, maxErr)
	cs.rmsErr = append(cs.rmsErr, rmsErr)
}

func (cs *ConvergenceStudy) Sort() {
	sort.Sort(byCells{cs})
}

type byCells struct {
	cs *ConvergenceStudy
}

func (b byCells) Len() int           { return len(b.cs.cells) }
func (b byCells) Less(i, j int) bool { return b.cs.cells[i] < b.cs.cells[j] }
func (b byCells) Swap(i, j int) {
	cs := b.cs
	cs.cells[i], cs.cells[j] = cs.cells[j], cs.cells[i]
	cs.maxErr[i], cs.maxErr[j] = cs.maxErr[j], cs.maxErr[i]
	cs.rmsErr[i], cs.rmsErr[j] = cs.rmsErr[j], cs.rmsErr[i]
}

// order is the observed convergence rate between two refinement levels
func order(k1, k2 int, e1, e2 float64) float64 {
	return math.Log(e1/e2) / math.Log(float64(k2)/float64(k1))
}

func readCSV(csvFile string) (studies map[string]*ConvergenceStudy) {
	var (
		records        [][]string
		err            error
		f              *os.File
		ok             bool
		cs             *ConvergenceStudy
		maxErr, rmsErr float64
	)
	studies = make(map[string]*ConvergenceStudy)
	if f, err = os.Open(csvFile); err != nil {
		panic(err)
	}
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		panic(err)
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		scheme, cellstxt := rec[0], rec[1]
		cells, _ := strconv.Atoi(cellstxt)
		if cs, ok = studies[scheme]; !ok {
			cs = NewConvergenceStudy(scheme)
			studies[scheme] = cs
		}
		_, _ = fmt.Sscanf(rec[2], "%f", &maxErr)
		_, _ = fmt.Sscanf(rec[3], "%f", &rmsErr)
		cs.Add(cells, maxErr, rmsErr)
	}
	return
}
