package tablefmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"meltr/internal/diag"
	"meltr/internal/melt"
	"meltr/internal/tablefmt"
	"meltr/internal/token"
)

func sampleTable(t *testing.T) *melt.Table {
	t.Helper()
	tbl, err := melt.FromData(&melt.TableData{
		Rows:    []int{1, 1, 2},
		Cols:    []int{1, 2, 1},
		Types:   []string{"integer", "character", "missing"},
		Values:  []string{"42", "hello world", ""},
		Missing: []bool{false, false, true},
	})
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := tablefmt.Pretty(&buf, sampleTable(t), tablefmt.Options{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "row") || !strings.Contains(lines[0], "data_type") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], `"42"`) {
		t.Errorf("line 1 = %q", lines[1])
	}
	if !strings.Contains(lines[3], "NA") {
		t.Errorf("missing line = %q", lines[3])
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("uncolored output contains ANSI escapes")
	}
}

func TestPrettyTruncatesValues(t *testing.T) {
	var buf bytes.Buffer
	opts := tablefmt.Options{MaxValueWidth: 8}
	if err := tablefmt.Pretty(&buf, sampleTable(t), opts); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "hello world") {
		t.Errorf("value not truncated:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "...") {
		t.Errorf("truncation marker missing:\n%s", buf.String())
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := tablefmt.JSON(&buf, sampleTable(t)); err != nil {
		t.Fatal(err)
	}

	var records []struct {
		Row      int     `json:"row"`
		Col      int     `json:"col"`
		DataType string  `json:"data_type"`
		Value    *string `json:"value"`
	}
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Value == nil || *records[0].Value != "42" {
		t.Errorf("record 0 value = %v", records[0].Value)
	}
	if records[2].Value != nil {
		t.Errorf("missing cell encoded as %q, want null", *records[2].Value)
	}
	if records[2].DataType != "missing" {
		t.Errorf("record 2 data_type = %q", records[2].DataType)
	}
}

func TestMsgpackRoundtrip(t *testing.T) {
	tbl := sampleTable(t)
	var buf bytes.Buffer
	if err := tablefmt.Msgpack(&buf, tbl); err != nil {
		t.Fatal(err)
	}

	var data melt.TableData
	if err := msgpack.NewDecoder(&buf).Decode(&data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	back, err := melt.FromData(&data)
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	if back.NumRows() != tbl.NumRows() {
		t.Fatalf("NumRows = %d, want %d", back.NumRows(), tbl.NumRows())
	}
	if v, _ := back.Value(1); v != "hello world" {
		t.Errorf("value 1 = %q", v)
	}
}

func TestTokens(t *testing.T) {
	tokens := []token.Token{
		token.NewString("a", 0, 0),
		token.NewMissing(0, 1),
		token.NewEOF(1, 0),
	}
	var buf bytes.Buffer
	if err := tablefmt.Tokens(&buf, tokens); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"a"`) || !strings.Contains(lines[0], "1:1") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[2], "EOF") {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestWarnings(t *testing.T) {
	warnings := []diag.Warning{
		{Row: 0, Col: 1, Message: "unterminated quote"},
		{Row: 4, Col: 0, Message: "trailing garbage after closing quote"},
	}
	var buf bytes.Buffer
	tablefmt.Warnings(&buf, warnings, false)
	out := buf.String()
	if !strings.Contains(out, "2 warning(s):") {
		t.Errorf("missing count header:\n%s", out)
	}
	if !strings.Contains(out, "[1, 2] unterminated quote") {
		t.Errorf("missing first warning:\n%s", out)
	}
	if !strings.Contains(out, "[5, 1]") {
		t.Errorf("missing second position:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("uncolored warnings contain ANSI escapes")
	}

	buf.Reset()
	tablefmt.Warnings(&buf, nil, false)
	if buf.Len() != 0 {
		t.Errorf("empty warning list produced output: %q", buf.String())
	}
}
