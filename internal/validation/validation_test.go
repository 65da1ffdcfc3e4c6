package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/printshop/docstore/types"
)

func productFields() []types.FieldSpec {
	return []types.FieldSpec{
		{Name: "_id", Type: types.String},
		{Name: "description", Type: types.String},
		{Name: "likes", Type: types.Number, Required: true},
		{Name: "urls", Type: types.Object, Fields: []types.FieldSpec{
			{Name: "regular", Type: types.String, Required: true},
			{Name: "small", Type: types.String, Required: true},
			{Name: "thumb", Type: types.String, Required: true},
		}},
		{Name: "tags", Type: types.Array, Fields: []types.FieldSpec{
			{Name: "title", Type: types.String, Required: true},
		}},
		{Name: "status", Type: types.String, Enum: []string{"CREATED", "PENDING", "COMPLETED"}},
	}
}

func validProduct() types.Document {
	return types.Document{
		"_id":   "p1",
		"likes": 5,
		"urls": map[string]any{
			"regular": "r", "small": "s", "thumb": "t",
		},
		"tags": []any{map[string]any{"title": "studio"}},
	}
}

func TestValidateSpecs(t *testing.T) {
	tests := []struct {
		name    string
		fields  []types.FieldSpec
		wantErr string
	}{
		{
			name:    "no fields",
			fields:  nil,
			wantErr: "at least one field",
		},
		{
			name: "duplicate name",
			fields: []types.FieldSpec{
				{Name: "likes", Type: types.Number},
				{Name: "likes", Type: types.Number},
			},
			wantErr: "duplicate field name",
		},
		{
			name: "empty name",
			fields: []types.FieldSpec{
				{Name: "", Type: types.String},
			},
			wantErr: "cannot be empty",
		},
		{
			name: "reference without target",
			fields: []types.FieldSpec{
				{Name: "products", Type: types.Reference},
			},
			wantErr: "must name a target collection",
		},
		{
			name: "target on non-reference",
			fields: []types.FieldSpec{
				{Name: "status", Type: types.String, Ref: "products"},
			},
			wantErr: "only reference fields",
		},
		{
			name: "default outside enum",
			fields: []types.FieldSpec{
				{
					Name: "status", Type: types.String,
					Enum:        []string{"CREATED", "PENDING"},
					Default:     "SHIPPED",
					DefaultKind: types.DefaultLiteral,
				},
			},
			wantErr: "not in the list of valid values",
		},
		{
			name: "generated default without generator",
			fields: []types.FieldSpec{
				{Name: "_id", Type: types.String, DefaultKind: types.DefaultGenerated},
			},
			wantErr: "requires a generator",
		},
		{
			name: "default value without kind",
			fields: []types.FieldSpec{
				{Name: "status", Type: types.String, Default: "CREATED"},
			},
			wantErr: "without a default kind",
		},
		{
			name: "duplicate enum value",
			fields: []types.FieldSpec{
				{Name: "status", Type: types.String, Enum: []string{"A", "A"}},
			},
			wantErr: "duplicate enum value",
		},
		{
			name: "subfields on scalar",
			fields: []types.FieldSpec{
				{Name: "likes", Type: types.Number, Fields: []types.FieldSpec{{Name: "x", Type: types.String}}},
			},
			wantErr: "only object and array fields",
		},
		{
			name: "nested duplicate reported with path",
			fields: []types.FieldSpec{
				{Name: "urls", Type: types.Object, Fields: []types.FieldSpec{
					{Name: "regular", Type: types.String},
					{Name: "regular", Type: types.String},
				}},
			},
			wantErr: "urls.regular",
		},
		{
			name:    "valid product schema",
			fields:  productFields(),
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpecs(tt.fields)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidateDocument(t *testing.T) {
	schema := types.NewSchema("products", productFields())

	tests := []struct {
		name      string
		mutate    func(doc types.Document)
		wantField string
		wantWord  string
	}{
		{
			name:   "valid document",
			mutate: func(doc types.Document) {},
		},
		{
			name:      "missing required number",
			mutate:    func(doc types.Document) { delete(doc, "likes") },
			wantField: "likes",
			wantWord:  "required",
		},
		{
			name:      "nil required value",
			mutate:    func(doc types.Document) { doc["likes"] = nil },
			wantField: "likes",
			wantWord:  "required",
		},
		{
			name:      "required subfield missing",
			mutate:    func(doc types.Document) { delete(doc["urls"].(map[string]any), "regular") },
			wantField: "urls.regular",
			wantWord:  "required",
		},
		{
			name:      "absent object owes required subfields",
			mutate:    func(doc types.Document) { delete(doc, "urls") },
			wantField: "urls.regular",
			wantWord:  "required",
		},
		{
			name:      "empty string counts as missing",
			mutate:    func(doc types.Document) { doc["urls"].(map[string]any)["thumb"] = "" },
			wantField: "urls.thumb",
			wantWord:  "required",
		},
		{
			name:      "enum violation",
			mutate:    func(doc types.Document) { doc["status"] = "SHIPPED" },
			wantField: "status",
			wantWord:  "SHIPPED",
		},
		{
			name:      "array element missing title",
			mutate:    func(doc types.Document) { doc["tags"] = []any{map[string]any{"title": "a"}, map[string]any{}} },
			wantField: "tags.1.title",
			wantWord:  "required",
		},
		{
			name:      "wrong type for number",
			mutate:    func(doc types.Document) { doc["likes"] = "five" },
			wantField: "likes",
			wantWord:  "expected a number",
		},
		{
			name:      "wrong type for object",
			mutate:    func(doc types.Document) { doc["urls"] = "not-an-object" },
			wantField: "urls",
			wantWord:  "expected an object",
		},
		{
			name: "first violation wins in declaration order",
			mutate: func(doc types.Document) {
				delete(doc, "likes")
				doc["status"] = "SHIPPED"
			},
			wantField: "likes",
			wantWord:  "required",
		},
		{
			name:   "zero is a present number",
			mutate: func(doc types.Document) { doc["likes"] = 0 },
		},
		{
			name:   "float64 from a JSON round trip is a number",
			mutate: func(doc types.Document) { doc["likes"] = float64(5) },
		},
		{
			name:   "empty tags array is allowed",
			mutate: func(doc types.Document) { doc["tags"] = []any{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validProduct()
			tt.mutate(doc)

			err := ValidateDocument(schema, doc)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *types.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, verr.Field)
			}
			if !strings.Contains(verr.Error(), tt.wantWord) {
				t.Errorf("expected reason containing %q, got %q", tt.wantWord, verr.Error())
			}
		})
	}
}

func TestValidateReferenceField(t *testing.T) {
	schema := types.NewSchema("orders", []types.FieldSpec{
		{Name: "buyerEmail", Type: types.String, Required: true},
		{Name: "products", Type: types.Reference, Ref: "products", Required: true},
	})

	base := func() types.Document {
		return types.Document{"buyerEmail": "a@b.com", "products": []any{"p1"}}
	}

	t.Run("list of identifiers passes", func(t *testing.T) {
		if err := ValidateDocument(schema, base()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("single identifier passes", func(t *testing.T) {
		doc := base()
		doc["products"] = "p1"
		if err := ValidateDocument(schema, doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing reference fails", func(t *testing.T) {
		doc := base()
		delete(doc, "products")
		var verr *types.ValidationError
		if err := ValidateDocument(schema, doc); !errors.As(err, &verr) || verr.Field != "products" {
			t.Fatalf("expected ValidationError on products, got %v", err)
		}
	})

	t.Run("non-string entry fails with index", func(t *testing.T) {
		doc := base()
		doc["products"] = []any{"p1", 42}
		var verr *types.ValidationError
		if err := ValidateDocument(schema, doc); !errors.As(err, &verr) || verr.Field != "products.1" {
			t.Fatalf("expected ValidationError on products.1, got %v", err)
		}
	})
}
