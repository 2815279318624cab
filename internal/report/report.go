// Package report renders a quiz result summary as a PNG report card.
package report

import (
	"fmt"
	"image"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/Santhosh-Billionaire/quizplatform/internal/quiz"
)

const (
	cardWidth  = 900
	headerH    = 150
	rowH       = 34
	marginX    = 40
	maxRows    = 40
	footerH    = 60
	titleSize  = 28
	bodySize   = 16
	statusSize = 14
)

// Card is everything one rendered report needs.
type Card struct {
	Title     string
	UserID    string
	Summary   quiz.Summary
	Questions []quiz.Question
	Responses []quiz.Response
}

// Renderer draws report cards with a fixed TrueType face set.
type Renderer struct {
	title  font.Face
	body   font.Face
	status font.Face
}

// NewRenderer parses the TTF at fontPath once and derives the faces the
// card layout uses.
func NewRenderer(fontPath string) (*Renderer, error) {
	raw, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	ft, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := func(size float64) font.Face {
		return truetype.NewFace(ft, &truetype.Options{Size: size})
	}
	return &Renderer{
		title:  face(titleSize),
		body:   face(bodySize),
		status: face(statusSize),
	}, nil
}

// Render draws the card: a header with the title and aggregate stats,
// then one row per answered question marked correct or incorrect. Rows
// beyond maxRows are elided with a count.
func (r *Renderer) Render(card Card) (image.Image, error) {
	rows := r.rows(card)
	shown := len(rows)
	if shown > maxRows {
		shown = maxRows
	}
	height := headerH + shown*rowH + footerH

	dc := gg.NewContext(cardWidth, height)
	dc.SetHexColor("#ffffff")
	dc.Clear()

	// Header band.
	dc.SetHexColor("#1e293b")
	dc.DrawRectangle(0, 0, cardWidth, headerH)
	dc.Fill()

	dc.SetFontFace(r.title)
	dc.SetHexColor("#ffffff")
	title := card.Title
	if title == "" {
		title = "Quiz Results"
	}
	dc.DrawStringAnchored(title, marginX, 52, 0, 0.5)

	dc.SetFontFace(r.body)
	dc.SetHexColor("#cbd5e1")
	stats := fmt.Sprintf("%d/%d correct  ·  %d%% accuracy  ·  %.0fs total",
		card.Summary.Correct, card.Summary.Total, card.Summary.Accuracy, card.Summary.TotalTime)
	dc.DrawStringAnchored(stats, marginX, 96, 0, 0.5)
	if card.UserID != "" {
		dc.SetFontFace(r.status)
		dc.DrawStringAnchored("user "+card.UserID, marginX, 124, 0, 0.5)
	}

	// Question rows.
	y := float64(headerH)
	for i, row := range rows {
		if i >= maxRows {
			break
		}
		if i%2 == 1 {
			dc.SetHexColor("#f1f5f9")
			dc.DrawRectangle(0, y, cardWidth, rowH)
			dc.Fill()
		}
		mid := y + rowH/2

		if row.correct {
			dc.SetHexColor("#16a34a")
		} else {
			dc.SetHexColor("#dc2626")
		}
		dc.DrawCircle(marginX, mid, 6)
		dc.Fill()

		dc.SetFontFace(r.body)
		dc.SetHexColor("#0f172a")
		dc.DrawStringAnchored(truncate(row.text, 88), marginX+24, mid, 0, 0.5)
		y += rowH
	}

	dc.SetFontFace(r.status)
	dc.SetHexColor("#64748b")
	if extra := len(rows) - shown; extra > 0 {
		dc.DrawStringAnchored(fmt.Sprintf("… and %d more", extra), marginX, y+24, 0, 0.5)
	} else {
		dc.DrawStringAnchored("generated by quizplatform", marginX, y+24, 0, 0.5)
	}

	return dc.Image(), nil
}

type cardRow struct {
	text    string
	correct bool
}

func (r *Renderer) rows(card Card) []cardRow {
	byID := make(map[string]quiz.Question, len(card.Questions))
	for _, q := range card.Questions {
		byID[q.ID] = q
	}
	out := make([]cardRow, 0, len(card.Responses))
	for i, resp := range card.Responses {
		text := fmt.Sprintf("Q%d", i+1)
		if q, ok := byID[resp.QuestionID]; ok {
			text = fmt.Sprintf("Q%d  %s", i+1, q.Question)
		}
		out = append(out, cardRow{text: text, correct: resp.Correct})
	}
	return out
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
