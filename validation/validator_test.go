// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !integration

package validation

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/preflight/request"
)

func titledPage(content string) *request.PageCreate {
	return &request.PageCreate{
		Parent:     request.DatabaseParent("db"),
		Properties: request.NewProperties().Set("title", request.TitleValue(request.Text(content))),
	}
}

func paragraphs(n int) []request.Block {
	blocks := make([]request.Block, n)
	for i := range blocks {
		blocks[i] = request.Paragraph(request.Text("normal text"))
	}

	return blocks
}

func TestValidate_LongTitle(t *testing.T) {
	t.Parallel()

	page := titledPage(strings.Repeat("a", 2100))

	res := MustNew().Validate(page)
	require.Equal(t, 1, res.Len())

	v, ok := res.First()
	require.True(t, ok)
	assert.Equal(t, "title.title[0]", v.Field)
	assert.Equal(t, ContentTooLong, v.Kind)
	assert.True(t, v.AutoFixAvailable)
	assert.Equal(t, 2100, v.CurrentValue)
	assert.Equal(t, 2000, v.Limit)
}

func TestValidateOrFix_LongTitle(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("a", 2100)
	page := titledPage(content)

	fixed, err := Fix(MustNew(), page)
	require.NoError(t, err)
	require.NotSame(t, page, fixed)

	title, ok := fixed.Properties.Get("title")
	require.True(t, ok)
	require.Len(t, title.Title, 2)
	assert.Len(t, title.Title[0].Content(), 2000)
	assert.Len(t, title.Title[1].Content(), 100)
	assert.Equal(t, content, request.PlainTextOf(title.Title))

	orig, _ := page.Properties.Get("title")
	assert.Len(t, orig.Title, 1, "caller's request must not change")

	assert.True(t, MustNew().Validate(fixed).IsValid())
}

func TestValidate_TooManyOptions(t *testing.T) {
	t.Parallel()

	names := make([]string, 150)
	for i := range names {
		names[i] = "opt"
	}
	page := &request.PageCreate{
		Properties: request.NewProperties().Set("Tags", request.MultiSelectValue(names...)),
	}

	v := MustNew()
	res := v.Validate(page)
	require.Equal(t, 1, res.Len())

	viol, _ := res.First()
	assert.Equal(t, "Tags.multiSelect", viol.Field)
	assert.Equal(t, ArrayTooLarge, viol.Kind)
	assert.Equal(t, 150, viol.CurrentValue)
	assert.Equal(t, 100, viol.Limit)
	assert.True(t, viol.AutoFixAvailable)

	_, err := v.ValidateOrFix(page)
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, viol, verr.Violation)
}

func TestValidateOrFix_ArrayViolationsAlwaysFail(t *testing.T) {
	t.Parallel()

	for _, autoSplit := range []bool{true, false} {
		v := MustNew(WithAutoSplitLongText(autoSplit))
		_, err := v.ValidateOrFix(request.BlockList(paragraphs(101)))
		require.ErrorIs(t, err, ErrValidation)

		var verr *Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, ArrayTooLarge, verr.Violation.Kind)
	}
}

func TestValidateOrThrow(t *testing.T) {
	t.Parallel()

	v := MustNew()

	err := v.ValidateOrThrow("children", paragraphs(101))
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "children", verr.Violation.Field)
	assert.Equal(t, ArrayTooLarge, verr.Violation.Kind)
	assert.Equal(t, 101, verr.Violation.CurrentValue)

	require.NoError(t, v.ValidateOrThrow("children", paragraphs(100)))
	require.NoError(t, v.ValidateOrThrow("children", nil))
}

func TestValidateOrThrow_NeverRepairs(t *testing.T) {
	t.Parallel()

	blocks := []request.Block{request.Paragraph(request.Text(strings.Repeat("\u00e9", 2001)))}

	err := MustNew().ValidateOrThrow("children", blocks)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "children[0].paragraph.richText[0]", verr.Violation.Field)
	assert.Equal(t, ContentTooLong, verr.Violation.Kind)
}

func TestValidate_PageUpdateNullProperties(t *testing.T) {
	t.Parallel()

	update := &request.PageUpdate{Properties: nil}
	v := MustNew()

	assert.True(t, v.Validate(update).IsValid())

	got, err := v.ValidateOrFix(update)
	require.NoError(t, err)
	assert.Same(t, update, got)
}

func TestValidate_LongHref(t *testing.T) {
	t.Parallel()

	seg := request.Text("click")
	seg.Href = "https://example.com/" + strings.Repeat("x", 2000)
	page := &request.PageCreate{
		Properties: request.NewProperties().Set("Name", request.TitleValue(seg)),
	}

	v := MustNew(WithAutoSplitLongText(true))
	res := v.Validate(page)
	require.Equal(t, 1, res.Len())

	viol, _ := res.First()
	assert.Equal(t, "Name.title[0].href", viol.Field)
	assert.Equal(t, ContentTooLong, viol.Kind)
	assert.False(t, viol.AutoFixAvailable)

	_, err := v.ValidateOrFix(page)
	require.ErrorIs(t, err, ErrValidation)
}

func TestValidate_Checks(t *testing.T) {
	t.Parallel()

	long := func(n int) string { return strings.Repeat("a", n) }
	segments := func(n int) []request.RichText {
		out := make([]request.RichText, n)
		for i := range out {
			out[i] = request.Text("s")
		}
		return out
	}

	tests := []struct {
		name      string
		value     request.PropertyValue
		wantField string
		wantKind  Kind
		autoFix   bool
	}{
		{"url", request.URLValue(long(2001)), "P.url", ContentTooLong, false},
		{"email", request.EmailValue(long(201)), "P.email", ContentTooLong, false},
		{"phone", request.PhoneNumberValue(long(201)), "P.phoneNumber", ContentTooLong, false},
		{"people", request.PeopleValue(strings.Split(long(101), "")...), "P.people", ArrayTooLarge, true},
		{"relation", request.RelationValue(strings.Split(long(101), "")...), "P.relation", ArrayTooLarge, true},
		{"rich text content", request.RichTextValue(request.Text("ok"), request.Text(long(2001))), "P.richText[1]", ContentTooLong, true},
		{"rich text array", request.RichTextValue(segments(101)...), "P.richText", ArrayTooLarge, true},
		{"link url", request.RichTextValue(request.LinkedText("x", long(2001))), "P.richText[0].text.link.url", ContentTooLong, false},
		{"equation", request.RichTextValue(request.InlineEquation(long(1001))), "P.richText[0].equation.expression", ContentTooLong, false},
		{"files", request.FilesValue(make([]request.FileObject, 101)...), "P.files", ArrayTooLarge, true},
		{"file url", request.FilesValue(request.FileObject{Name: "a"}, *request.ExternalFileObject(long(2001))), "P.files[1].external.url", ContentTooLong, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page := &request.PageCreate{Properties: request.NewProperties().Set("P", tt.value)}
			res := MustNew().Validate(page)
			require.Equal(t, 1, res.Len(), res.Summary())

			v, _ := res.First()
			assert.Equal(t, tt.wantField, v.Field)
			assert.Equal(t, tt.wantKind, v.Kind)
			assert.Equal(t, tt.autoFix, v.AutoFixAvailable)
		})
	}
}

func TestValidate_PropertyNamesWithPathSyntax(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("u", 2001)
	page := &request.PageCreate{
		Properties: request.NewProperties().
			Set("icon.external", request.URLValue(long)).
			Set("Site [old]", request.URLValue(long)),
		Icon: request.ExternalIcon(long),
	}

	res := MustNew().Validate(page)
	assert.Equal(t, []string{
		`["icon.external"].url`,
		`["Site [old]"].url`,
		"icon.external.url",
	}, res.Fields())
	assert.Len(t, res.ByField(`["icon.external"]`), 1)
}

func TestValidateOrFix_PropertyNamedLikeBlockPath(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("p", 2500)
	page := &request.PageCreate{
		Properties: request.NewProperties().
			Set("children[0].paragraph", request.RichTextValue(request.Text(""))),
		Children: []request.Block{request.Paragraph(request.Text(content))},
	}

	res := MustNew().Validate(page)
	require.Equal(t, []string{"children[0].paragraph.richText[0]"}, res.Fields())

	fixed, err := Fix(MustNew(), page)
	require.NoError(t, err)

	prop, ok := fixed.Properties.Get("children[0].paragraph")
	require.True(t, ok)
	require.Len(t, prop.RichText, 1)
	assert.Empty(t, prop.RichText[0].Content())

	segs := fixed.Children[0].Paragraph.RichText
	require.Len(t, segs, 2)
	assert.Equal(t, content, segs[0].Content()+segs[1].Content())
	assert.Len(t, page.Children[0].Paragraph.RichText, 1, "input is not modified")
}

func TestValidate_AtLimit(t *testing.T) {
	t.Parallel()

	page := &request.PageCreate{
		Properties: request.NewProperties().
			Set("Name", request.TitleValue(request.Text(strings.Repeat("\u00e9", 2000)))).
			Set("Site", request.URLValue(strings.Repeat("u", 2000))).
			Set("Mail", request.EmailValue(strings.Repeat("m", 200))),
		Children: paragraphs(100),
	}

	assert.True(t, MustNew().Validate(page).IsValid())
}

func TestValidate_DatabaseCreate(t *testing.T) {
	t.Parallel()

	options := make([]string, 101)
	for i := range options {
		options[i] = "o"
	}
	db := &request.DatabaseCreate{
		Title: []request.RichText{request.Text(strings.Repeat("t", 2001))},
		Properties: request.NewSchemaProperties().
			Set("Name", request.TitleSchema()).
			Set("Stage", request.SelectSchema(options...)),
	}

	res := MustNew().Validate(db)
	assert.Equal(t, []string{"title[0]", "Stage.select.options"}, res.Fields())

	_, err := MustNew().ValidateOrFix(db)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Stage.select.options", verr.Violation.Field)
}

func TestValidate_TableCells(t *testing.T) {
	t.Parallel()

	blocks := request.BlockList{
		request.Table(2, request.TableRow(
			[]request.RichText{request.Text("a")},
			[]request.RichText{request.Text(strings.Repeat("b", 2001))},
		)),
	}

	res := MustNew().Validate(blocks)
	assert.Equal(t, []string{"children[0].table.children[0].tableRow.cells[1][0]"}, res.Fields())

	fixed, err := Fix(MustNew(), blocks)
	require.NoError(t, err)
	assert.Len(t, fixed[0].Table.Children[0].TableRow.Cells[1], 2)
	assert.Len(t, blocks[0].Table.Children[0].TableRow.Cells[1], 1)
}

func TestValidate_Idempotent(t *testing.T) {
	t.Parallel()

	page := titledPage(strings.Repeat("a", 5000))
	page.Children = paragraphs(120)

	v := MustNew()
	first := v.Validate(page).Violations()
	second := v.Validate(page).Violations()
	assert.Equal(t, first, second)
}

func TestValidateOrFix_PreservesFormattingAndSiblings(t *testing.T) {
	t.Parallel()

	long := request.LinkedText(strings.Repeat("0123456789", 450), "https://example.com").
		WithAnnotations(request.Annotations{Bold: true, Code: true, Color: "red"})
	page := &request.PageCreate{
		Properties: request.NewProperties().
			Set("Notes", request.RichTextValue(request.Text("before"), long, request.Text("after"))),
	}

	fixed, err := Fix(MustNew(), page)
	require.NoError(t, err)

	notes, _ := fixed.Properties.Get("Notes")
	require.Len(t, notes.RichText, 5)
	assert.Equal(t, "before", notes.RichText[0].Content())
	assert.Equal(t, "after", notes.RichText[4].Content())
	for _, seg := range notes.RichText[1:4] {
		assert.Equal(t, long.Annotations, seg.Annotations)
		assert.Equal(t, long.Text.Link, seg.Text.Link)
	}
	assert.Equal(t, "before"+long.Content()+"after", request.PlainTextOf(notes.RichText))
}

func TestValidateOrFix_NestedBlocks(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("n", 2500)
	page := &request.PageCreate{
		Children: []request.Block{
			request.Toggle(request.Text("outer")).WithChildren(
				request.Quote(request.Text("q")),
				request.Paragraph(request.Text(long)),
			),
		},
	}

	fixed, err := Fix(MustNew(), page)
	require.NoError(t, err)

	nested := fixed.Children[0].Toggle.Children[1].Paragraph.RichText
	require.Len(t, nested, 2)
	assert.Equal(t, long, request.PlainTextOf(nested))
	assert.Len(t, page.Children[0].Toggle.Children[1].Paragraph.RichText, 1)
}

func TestValidateOrFix_AutoSplitDisabled(t *testing.T) {
	t.Parallel()

	v := MustNew(WithConfig(Config{AutoSplitLongText: false}))
	_, err := v.ValidateOrFix(titledPage(strings.Repeat("a", 2001)))

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title.title[0]", verr.Violation.Field)
	assert.False(t, v.Config().AutoSplitLongText)
}

func TestValidateOrFix_FirstUnrepairableWins(t *testing.T) {
	t.Parallel()

	page := titledPage(strings.Repeat("a", 2001))
	page.Properties.
		Set("Mail", request.EmailValue(strings.Repeat("m", 201))).
		Set("Site", request.URLValue(strings.Repeat("u", 2001)))

	_, err := MustNew().ValidateOrFix(page)
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Mail.email", verr.Violation.Field)
}

func TestValidateOrFix_Nil(t *testing.T) {
	t.Parallel()

	_, err := MustNew().ValidateOrFix(nil)
	require.ErrorIs(t, err, ErrUnsupportedRequest)
	assert.True(t, MustNew().Validate(nil).IsValid())
}

func TestValidator_Concurrent(t *testing.T) {
	t.Parallel()

	v := MustNew()
	page := titledPage(strings.Repeat("a", 4100))
	want := v.Validate(page).Violations()

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, v.Validate(page).Violations())

			fixed, err := Fix(v, page)
			if assert.NoError(t, err) {
				title, _ := fixed.Properties.Get("title")
				assert.Len(t, title.Title, 3)
			}
		}()
	}
	wg.Wait()
}

type recordedRun struct {
	operation  string
	outcome    string
	violations int
}

type fakeRecorder struct {
	mu     sync.Mutex
	runs   []recordedRun
	splits map[string]int
}

func (r *fakeRecorder) RecordValidation(op, outcome string, violations []Violation, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, recordedRun{op, outcome, len(violations)})
}

func (r *fakeRecorder) RecordSplit(field string, segments int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.splits == nil {
		r.splits = make(map[string]int)
	}
	r.splits[field] = segments
}

func TestValidator_Recorder(t *testing.T) {
	t.Parallel()

	rec := &fakeRecorder{}
	v := MustNew(WithRecorder(rec))

	v.Validate(titledPage("ok"))
	v.Validate(titledPage(strings.Repeat("a", 2001)))
	_, _ = v.ValidateOrFix(titledPage(strings.Repeat("a", 4001)))
	_ = v.ValidateOrThrow("children", paragraphs(101))
	v.ValidateBlocks("children", paragraphs(1))

	assert.Equal(t, []recordedRun{
		{opValidate, outcomeValid, 0},
		{opValidate, outcomeInvalid, 1},
		{opValidateOrFix, outcomeFixed, 1},
		{opValidateOrThrow, outcomeAborted, 1},
		{opValidateBlocks, outcomeValid, 0},
	}, rec.runs)
	assert.Equal(t, map[string]int{"title.title[0]": 3}, rec.splits)
}

func TestNew_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := New(WithLogger(nil))
	require.Error(t, err)

	_, err = New(WithRecorder(nil))
	require.Error(t, err)

	assert.Panics(t, func() { MustNew(WithLogger(nil)) })
}

func TestPackageLevel(t *testing.T) {
	t.Parallel()

	page := titledPage(strings.Repeat("a", 2001))
	assert.Equal(t, 1, Validate(page).Len())

	fixed, err := ValidateOrFix(page)
	require.NoError(t, err)
	assert.True(t, Validate(fixed).IsValid())

	err = ValidateOrThrow("children", paragraphs(101))
	assert.True(t, errors.Is(err, ErrValidation))
}
