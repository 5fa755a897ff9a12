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

// Empty is a configuration-less schema payload, encoded as {}.
type Empty struct{}

// NumberConfig configures a number property.
type NumberConfig struct {
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// OptionsConfig configures a select, multi_select, or status property.
type OptionsConfig struct {
	Options []SelectOption `json:"options" yaml:"options"`
}

// RelationConfig configures a relation property.
type RelationConfig struct {
	DatabaseID     string `json:"database_id,omitempty" yaml:"database_id,omitempty"`
	DataSourceID   string `json:"data_source_id,omitempty" yaml:"data_source_id,omitempty"`
	Type           string `json:"type,omitempty" yaml:"type,omitempty"`
	SingleProperty *Empty `json:"single_property,omitempty" yaml:"single_property,omitempty"`
	DualProperty   *Empty `json:"dual_property,omitempty" yaml:"dual_property,omitempty"`
}

// FormulaConfig configures a formula property.
type FormulaConfig struct {
	Expression string `json:"expression" yaml:"expression"`
}

// PropertySchema defines one database property.
type PropertySchema struct {
	Type           PropertyType    `json:"type,omitempty" yaml:"type,omitempty"`
	Name           string          `json:"name,omitempty" yaml:"name,omitempty"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	Title          *Empty          `json:"title,omitempty" yaml:"title,omitempty"`
	RichText       *Empty          `json:"rich_text,omitempty" yaml:"rich_text,omitempty"`
	Number         *NumberConfig   `json:"number,omitempty" yaml:"number,omitempty"`
	Select         *OptionsConfig  `json:"select,omitempty" yaml:"select,omitempty"`
	MultiSelect    *OptionsConfig  `json:"multi_select,omitempty" yaml:"multi_select,omitempty"`
	Status         *OptionsConfig  `json:"status,omitempty" yaml:"status,omitempty"`
	Date           *Empty          `json:"date,omitempty" yaml:"date,omitempty"`
	People         *Empty          `json:"people,omitempty" yaml:"people,omitempty"`
	Files          *Empty          `json:"files,omitempty" yaml:"files,omitempty"`
	Checkbox       *Empty          `json:"checkbox,omitempty" yaml:"checkbox,omitempty"`
	URL            *Empty          `json:"url,omitempty" yaml:"url,omitempty"`
	Email          *Empty          `json:"email,omitempty" yaml:"email,omitempty"`
	PhoneNumber    *Empty          `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	Relation       *RelationConfig `json:"relation,omitempty" yaml:"relation,omitempty"`
	Formula        *FormulaConfig  `json:"formula,omitempty" yaml:"formula,omitempty"`
	CreatedTime    *Empty          `json:"created_time,omitempty" yaml:"created_time,omitempty"`
	LastEditedTime *Empty          `json:"last_edited_time,omitempty" yaml:"last_edited_time,omitempty"`
}

// Kind returns the property type, inferring it from the first populated
// slot when Type is empty.
func (s PropertySchema) Kind() PropertyType {
	if s.Type != "" {
		return s.Type
	}

	switch {
	case s.Title != nil:
		return PropertyTitle
	case s.RichText != nil:
		return PropertyRichText
	case s.Number != nil:
		return PropertyNumber
	case s.Select != nil:
		return PropertySelect
	case s.MultiSelect != nil:
		return PropertyMultiSelect
	case s.Status != nil:
		return PropertyStatus
	case s.Date != nil:
		return PropertyDate
	case s.People != nil:
		return PropertyPeople
	case s.Files != nil:
		return PropertyFiles
	case s.Checkbox != nil:
		return PropertyCheckbox
	case s.URL != nil:
		return PropertyURL
	case s.Email != nil:
		return PropertyEmail
	case s.PhoneNumber != nil:
		return PropertyPhoneNumber
	case s.Relation != nil:
		return PropertyRelation
	case s.Formula != nil:
		return PropertyFormula
	case s.CreatedTime != nil:
		return PropertyCreatedTime
	case s.LastEditedTime != nil:
		return PropertyLastEditedTime
	}

	return ""
}

// TitleSchema defines the title property.
func TitleSchema() PropertySchema {
	return PropertySchema{Type: PropertyTitle, Title: &Empty{}}
}

// RichTextSchema defines a rich_text property.
func RichTextSchema() PropertySchema {
	return PropertySchema{Type: PropertyRichText, RichText: &Empty{}}
}

// SelectSchema defines a select property with the given option names.
func SelectSchema(names ...string) PropertySchema {
	return PropertySchema{Type: PropertySelect, Select: optionsOf(names)}
}

// MultiSelectSchema defines a multi_select property with the given option names.
func MultiSelectSchema(names ...string) PropertySchema {
	return PropertySchema{Type: PropertyMultiSelect, MultiSelect: optionsOf(names)}
}

// StatusSchema defines a status property with the given option names.
func StatusSchema(names ...string) PropertySchema {
	return PropertySchema{Type: PropertyStatus, Status: optionsOf(names)}
}

func optionsOf(names []string) *OptionsConfig {
	opts := make([]SelectOption, len(names))
	for i, n := range names {
		opts[i] = SelectOption{Name: n}
	}

	return &OptionsConfig{Options: opts}
}

// Clone returns a deep copy of s.
func (s PropertySchema) Clone() PropertySchema {
	c := s
	c.Select = s.Select.clone()
	c.MultiSelect = s.MultiSelect.clone()
	c.Status = s.Status.clone()
	c.Number = clonePtr(s.Number)
	c.Relation = clonePtr(s.Relation)
	c.Formula = clonePtr(s.Formula)

	return c
}

func (o *OptionsConfig) clone() *OptionsConfig {
	if o == nil {
		return nil
	}

	return &OptionsConfig{Options: cloneSlice(o.Options)}
}

// OptionsSlot returns the option definitions of an option-bearing schema
// under its type name, reporting whether s has one.
func (s PropertySchema) OptionsSlot() (PropertyType, []SelectOption, bool) {
	switch {
	case s.Select != nil:
		return PropertySelect, s.Select.Options, true
	case s.MultiSelect != nil:
		return PropertyMultiSelect, s.MultiSelect.Options, true
	case s.Status != nil:
		return PropertyStatus, s.Status.Options, true
	}

	return "", nil, false
}
