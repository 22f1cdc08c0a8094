package utils

import (
	"math"
	"sort"
	"strings"

	"github.com/tmercier/payslip-anomaly-api/dto"
)

// Words whose top-y differ by no more than this many units belong to
// the same visual row.
const lineYTolerance = 3.0

// GroupWordsIntoLines clusters word tokens into text lines by vertical
// proximity. Tokens are stable-sorted by (page, top-y, left-x); a token
// joins the current cluster when it is on the same page and its top-y
// is within tolerance of the cluster's first token. Assumes roughly
// axis-aligned rows, which holds for tabular payslip layouts.
func GroupWordsIntoLines(words []dto.WordToken) []dto.Line {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]dto.WordToken, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.BBox[1] != b.BBox[1] {
			return a.BBox[1] < b.BBox[1]
		}
		return a.BBox[0] < b.BBox[0]
	})

	var lines []dto.Line
	cluster := []dto.WordToken{sorted[0]}
	anchorY := sorted[0].BBox[1]
	page := sorted[0].Page

	for _, w := range sorted[1:] {
		if w.Page == page && math.Abs(w.BBox[1]-anchorY) <= lineYTolerance {
			cluster = append(cluster, w)
			continue
		}
		lines = append(lines, mergeLine(cluster))
		cluster = []dto.WordToken{w}
		anchorY = w.BBox[1]
		page = w.Page
	}
	lines = append(lines, mergeLine(cluster))

	return lines
}

// mergeLine joins one cluster into a Line: texts concatenated left to
// right, bbox as the coordinate-wise union.
func mergeLine(words []dto.WordToken) dto.Line {
	ordered := make([]dto.WordToken, len(words))
	copy(ordered, words)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].BBox[0] < ordered[j].BBox[0]
	})

	texts := make([]string, len(ordered))
	bbox := ordered[0].BBox
	for i, w := range ordered {
		texts[i] = w.Text
		bbox[0] = math.Min(bbox[0], w.BBox[0])
		bbox[1] = math.Min(bbox[1], w.BBox[1])
		bbox[2] = math.Max(bbox[2], w.BBox[2])
		bbox[3] = math.Max(bbox[3], w.BBox[3])
	}

	return dto.Line{
		Page: ordered[0].Page,
		Text: strings.Join(texts, " "),
		BBox: bbox,
	}
}
