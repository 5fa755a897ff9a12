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

package request

// PropertyType names a property kind on the wire.
type PropertyType string

const (
	PropertyTitle          PropertyType = "title"
	PropertyRichText       PropertyType = "rich_text"
	PropertyNumber         PropertyType = "number"
	PropertySelect         PropertyType = "select"
	PropertyMultiSelect    PropertyType = "multi_select"
	PropertyStatus         PropertyType = "status"
	PropertyDate           PropertyType = "date"
	PropertyPeople         PropertyType = "people"
	PropertyFiles          PropertyType = "files"
	PropertyCheckbox       PropertyType = "checkbox"
	PropertyURL            PropertyType = "url"
	PropertyEmail          PropertyType = "email"
	PropertyPhoneNumber    PropertyType = "phone_number"
	PropertyRelation       PropertyType = "relation"
	PropertyFormula        PropertyType = "formula"
	PropertyCreatedTime    PropertyType = "created_time"
	PropertyLastEditedTime PropertyType = "last_edited_time"
)

// FieldName returns the camelCase path name of t.
func (t PropertyType) FieldName() string {
	return FieldName(string(t))
}

// SelectOption is a select, status, or multi_select option.
type SelectOption struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Color Color  `json:"color,omitempty" yaml:"color,omitempty"`
}

// DateValue is the payload of a date property value.
type DateValue struct {
	Start    string `json:"start" yaml:"start"`
	End      string `json:"end,omitempty" yaml:"end,omitempty"`
	TimeZone string `json:"time_zone,omitempty" yaml:"time_zone,omitempty"`
}

// User references a workspace member.
type User struct {
	Object string `json:"object,omitempty" yaml:"object,omitempty"`
	ID     string `json:"id" yaml:"id"`
}

// PageReference references another page in a relation.
type PageReference struct {
	ID string `json:"id" yaml:"id"`
}

// PropertyValue is the value of one page property.
type PropertyValue struct {
	Type        PropertyType    `json:"type,omitempty" yaml:"type,omitempty"`
	Title       []RichText      `json:"title,omitempty" yaml:"title,omitempty"`
	RichText    []RichText      `json:"rich_text,omitempty" yaml:"rich_text,omitempty"`
	Number      *float64        `json:"number,omitempty" yaml:"number,omitempty"`
	Select      *SelectOption   `json:"select,omitempty" yaml:"select,omitempty"`
	MultiSelect []SelectOption  `json:"multi_select,omitempty" yaml:"multi_select,omitempty"`
	Status      *SelectOption   `json:"status,omitempty" yaml:"status,omitempty"`
	Date        *DateValue      `json:"date,omitempty" yaml:"date,omitempty"`
	People      []User          `json:"people,omitempty" yaml:"people,omitempty"`
	Files       []FileObject    `json:"files,omitempty" yaml:"files,omitempty"`
	Checkbox    *bool           `json:"checkbox,omitempty" yaml:"checkbox,omitempty"`
	URL         *string         `json:"url,omitempty" yaml:"url,omitempty"`
	Email       *string         `json:"email,omitempty" yaml:"email,omitempty"`
	PhoneNumber *string         `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	Relation    []PageReference `json:"relation,omitempty" yaml:"relation,omitempty"`
}

// Kind returns the property type, inferring it from the first populated
// slot when Type is empty.
func (p PropertyValue) Kind() PropertyType {
	if p.Type != "" {
		return p.Type
	}

	switch {
	case p.Title != nil:
		return PropertyTitle
	case p.RichText != nil:
		return PropertyRichText
	case p.Number != nil:
		return PropertyNumber
	case p.Select != nil:
		return PropertySelect
	case p.MultiSelect != nil:
		return PropertyMultiSelect
	case p.Status != nil:
		return PropertyStatus
	case p.Date != nil:
		return PropertyDate
	case p.People != nil:
		return PropertyPeople
	case p.Files != nil:
		return PropertyFiles
	case p.Checkbox != nil:
		return PropertyCheckbox
	case p.URL != nil:
		return PropertyURL
	case p.Email != nil:
		return PropertyEmail
	case p.PhoneNumber != nil:
		return PropertyPhoneNumber
	case p.Relation != nil:
		return PropertyRelation
	}

	return ""
}

// TitleValue returns a title property value.
func TitleValue(segments ...RichText) PropertyValue {
	return PropertyValue{Type: PropertyTitle, Title: segments}
}

// RichTextValue returns a rich_text property value.
func RichTextValue(segments ...RichText) PropertyValue {
	return PropertyValue{Type: PropertyRichText, RichText: segments}
}

// NumberValue returns a number property value.
func NumberValue(n float64) PropertyValue {
	return PropertyValue{Type: PropertyNumber, Number: &n}
}

// CheckboxValue returns a checkbox property value.
func CheckboxValue(checked bool) PropertyValue {
	return PropertyValue{Type: PropertyCheckbox, Checkbox: &checked}
}

// SelectValue returns a select property value.
func SelectValue(name string) PropertyValue {
	return PropertyValue{Type: PropertySelect, Select: &SelectOption{Name: name}}
}

// StatusValue returns a status property value.
func StatusValue(name string) PropertyValue {
	return PropertyValue{Type: PropertyStatus, Status: &SelectOption{Name: name}}
}

// MultiSelectValue returns a multi_select property value selecting names.
func MultiSelectValue(names ...string) PropertyValue {
	opts := make([]SelectOption, len(names))
	for i, n := range names {
		opts[i] = SelectOption{Name: n}
	}

	return PropertyValue{Type: PropertyMultiSelect, MultiSelect: opts}
}

// DateValueOf returns a date property value.
func DateValueOf(start, end string) PropertyValue {
	return PropertyValue{Type: PropertyDate, Date: &DateValue{Start: start, End: end}}
}

// PeopleValue returns a people property value referencing user ids.
func PeopleValue(ids ...string) PropertyValue {
	users := make([]User, len(ids))
	for i, id := range ids {
		users[i] = User{Object: "user", ID: id}
	}

	return PropertyValue{Type: PropertyPeople, People: users}
}

// RelationValue returns a relation property value referencing page ids.
func RelationValue(ids ...string) PropertyValue {
	refs := make([]PageReference, len(ids))
	for i, id := range ids {
		refs[i] = PageReference{ID: id}
	}

	return PropertyValue{Type: PropertyRelation, Relation: refs}
}

// FilesValue returns a files property value.
func FilesValue(files ...FileObject) PropertyValue {
	return PropertyValue{Type: PropertyFiles, Files: files}
}

// URLValue returns a url property value.
func URLValue(url string) PropertyValue {
	return PropertyValue{Type: PropertyURL, URL: &url}
}

// EmailValue returns an email property value.
func EmailValue(email string) PropertyValue {
	return PropertyValue{Type: PropertyEmail, Email: &email}
}

// PhoneNumberValue returns a phone_number property value.
func PhoneNumberValue(phone string) PropertyValue {
	return PropertyValue{Type: PropertyPhoneNumber, PhoneNumber: &phone}
}

// Clone returns a deep copy of p.
func (p PropertyValue) Clone() PropertyValue {
	c := p
	c.Title = CloneRichText(p.Title)
	c.RichText = CloneRichText(p.RichText)
	c.Number = clonePtr(p.Number)
	c.Select = clonePtr(p.Select)
	c.MultiSelect = cloneSlice(p.MultiSelect)
	c.Status = clonePtr(p.Status)
	c.Date = clonePtr(p.Date)
	c.People = cloneSlice(p.People)
	c.Files = cloneFiles(p.Files)
	c.Checkbox = clonePtr(p.Checkbox)
	c.URL = clonePtr(p.URL)
	c.Email = clonePtr(p.Email)
	c.PhoneNumber = clonePtr(p.PhoneNumber)
	c.Relation = cloneSlice(p.Relation)

	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p

	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}

	return append(make([]T, 0, len(s)), s...)
}
