package sim

import (
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

// Report summarizes a batch of simulated games.
type Report struct {
	Policy  Policy
	Endless bool
	Games   int
	Results []Result
	Elapsed time.Duration

	MeanScore   float64
	StdScore    float64
	MedianScore float64
	P90Score    float64
	BestScore   int
	BestSeed    int64

	MeanMoves     float64
	MeanTilesLeft float64
	BoardClears   int
}

// ClearRate is the fraction of games that emptied the board.
func (r *Report) ClearRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.BoardClears) / float64(r.Games)
}

func summarize(results []Result, opts Options) *Report {
	r := &Report{
		Policy:  opts.Policy,
		Endless: opts.Endless,
		Games:   len(results),
		Results: results,
	}
	if len(results) == 0 {
		return r
	}

	scores := make([]float64, len(results))
	moves := make([]float64, len(results))
	left := make([]float64, len(results))
	r.BestSeed = results[0].Seed
	for i, res := range results {
		scores[i] = float64(res.Score)
		moves[i] = float64(res.Stats.Moves)
		left[i] = float64(res.TilesLeft)
		if res.Stats.BoardCleared {
			r.BoardClears++
		}
		if res.Score > r.BestScore {
			r.BestScore = res.Score
			r.BestSeed = res.Seed
		}
	}

	r.MeanScore, r.StdScore = stat.MeanStdDev(scores, nil)
	r.MeanMoves = stat.Mean(moves, nil)
	r.MeanTilesLeft = stat.Mean(left, nil)

	slices.Sort(scores)
	r.MedianScore = stat.Quantile(0.5, stat.Empirical, scores, nil)
	r.P90Score = stat.Quantile(0.9, stat.Empirical, scores, nil)
	return r
}

var lang = language.English

// Table renders the report as a boxed two-column table.
func (r *Report) Table() string {
	p := message.NewPrinter(lang)
	mode := "classic"
	if r.Endless {
		mode = "endless"
	}

	keys := []string{
		"Policy", "Mode", "Games", "Mean score", "Std dev", "Median", "P90",
		"Best", "Mean moves", "Mean tiles left", "Boards cleared", "Elapsed",
	}
	vals := map[string]string{
		"Policy":          string(r.Policy),
		"Mode":            mode,
		"Games":           p.Sprintf("%d", r.Games),
		"Mean score":      p.Sprintf("%.1f", r.MeanScore),
		"Std dev":         p.Sprintf("%.1f", r.StdScore),
		"Median":          p.Sprintf("%.0f", r.MedianScore),
		"P90":             p.Sprintf("%.0f", r.P90Score),
		"Best":            p.Sprintf("%d (seed %d)", r.BestScore, r.BestSeed),
		"Mean moves":      p.Sprintf("%.1f", r.MeanMoves),
		"Mean tiles left": p.Sprintf("%.1f", r.MeanTilesLeft),
		"Boards cleared":  p.Sprintf("%d (%.1f%%)", r.BoardClears, r.ClearRate()*100),
		"Elapsed":         r.Elapsed.Round(time.Millisecond).String(),
	}

	return boxTable("Simulation", keys, vals)
}

func boxTable(title string, keys []string, vals map[string]string) string {
	keyW, valW := 0, 0
	for _, k := range keys {
		keyW = max(keyW, runewidth.StringWidth(k))
		valW = max(valW, runewidth.StringWidth(vals[k]))
	}
	keyW += 2
	valW += 2

	inner := keyW + 1 + valW
	titleW := runewidth.StringWidth(title)
	if titleW > inner {
		valW += titleW - inner
		inner = titleW
	}

	var b strings.Builder
	top := "+" + strings.Repeat("-", inner) + "+\n"
	divider := "+" + strings.Repeat("-", keyW) + "+" + strings.Repeat("-", valW) + "+\n"

	left := (inner - titleW) / 2
	b.WriteString(top)
	b.WriteString("|" + pad(left) + title + pad(inner-titleW-left) + "|\n")
	b.WriteString(divider)
	for _, k := range keys {
		v := vals[k]
		b.WriteString("| " + runewidth.FillRight(k, keyW-2) + " | " + runewidth.FillRight(v, valW-2) + " |\n")
	}
	b.WriteString(divider)
	return b.String()
}

func pad(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
