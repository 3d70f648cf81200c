package eval

import (
	"text2phenotype.com/postag/tokenizer"
	"text2phenotype.com/postag/types"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type LengthMismatchError struct {
	Test int
	Key  int
}

func (err LengthMismatchError) Error() string {
	return fmt.Sprintf("key has %d tokens, test has %d", err.Key, err.Test)
}

type Count struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Row holds the predicted tags observed for one key tag, in first seen order.
type Row struct {
	Key       string  `json:"key"`
	Predicted []Count `json:"predicted"`
}

type Report struct {
	Correct   int     `json:"correct"`
	Total     int     `json:"total"`
	Accuracy  float64 `json:"accuracy"`
	Confusion []Row   `json:"confusion"`
}

func (report *Report) add(key string, predicted string) {
	if key == predicted {
		report.Correct++
	}
	report.Total++

	rowIdx := -1
	for i := range report.Confusion {
		if report.Confusion[i].Key == key {
			rowIdx = i
			break
		}
	}
	if rowIdx < 0 {
		report.Confusion = append(report.Confusion, Row{Key: key})
		rowIdx = len(report.Confusion) - 1
	}

	row := &report.Confusion[rowIdx]
	for i := range row.Predicted {
		if row.Predicted[i].Tag == predicted {
			row.Predicted[i].Count++
			return
		}
	}
	row.Predicted = append(row.Predicted, Count{Tag: predicted, Count: 1})
}

// Row returns the confusion row of a key tag.
func (report Report) Row(key string) (Row, bool) {
	for _, row := range report.Confusion {
		if row.Key == key {
			return row, true
		}
	}
	return Row{}, false
}

var bracketReplacer = strings.NewReplacer("[", " ", "]", " ")

// readTags extracts the tag of every word/TAG token. Brackets are blanked
// out anywhere in the text before splitting.
func readTags(text string, reduceAlternates bool) ([]string, error) {
	fields := strings.FieldsFunc(bracketReplacer.Replace(text), unicode.IsSpace)
	tags := make([]string, len(fields))
	for i, field := range fields {
		token, isOk := tokenizer.ParseTagged(field)
		if !isOk {
			return nil, tokenizer.MalformedTokenError{Token: field, Index: i}
		}
		tags[i] = token.Tag
		if !reduceAlternates && len(token.Alternates) > 0 {
			tags[i] = strings.Join(append([]string{token.Tag}, token.Alternates...), types.AlternateSeparator)
		}
	}
	return tags, nil
}

// Score aligns test and key tags by position. Key tags are reduced to their
// first alternate; test tags are compared as written.
func Score(test string, key string) (Report, error) {
	testTags, err := readTags(test, false)
	if err != nil {
		return Report{}, fmt.Errorf("test: %w", err)
	}
	keyTags, err := readTags(key, true)
	if err != nil {
		return Report{}, fmt.Errorf("key: %w", err)
	}
	if len(keyTags) < len(testTags) {
		return Report{}, LengthMismatchError{Test: len(testTags), Key: len(keyTags)}
	}

	report := Report{}
	for i, predicted := range testTags {
		report.add(keyTags[i], predicted)
	}
	if report.Total > 0 {
		report.Accuracy = float64(report.Correct) / float64(report.Total)
	}
	return report, nil
}

func (report Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Accuracy: %s\n", strconv.FormatFloat(report.Accuracy, 'f', -1, 64)); err != nil {
		return err
	}
	for _, row := range report.Confusion {
		var sb strings.Builder
		sb.WriteString(row.Key)
		sb.WriteString(":")
		for _, cnt := range row.Predicted {
			sb.WriteString(" ")
			sb.WriteString(cnt.Tag)
			sb.WriteString(":")
			sb.WriteString(strconv.Itoa(cnt.Count))
		}
		sb.WriteString("\n")
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func (report Report) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
