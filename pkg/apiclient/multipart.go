package apiclient

import (
	"bytes"
	"io"
	"mime/multipart"
)

// Form is a multipart request body: scalar fields plus zero or more
// file attachments (receipt images, item photos).
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	reader   io.Reader
}

// NewForm creates an empty Form.
func NewForm() *Form {
	return &Form{}
}

// Field adds a scalar field. Fields keep insertion order.
func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// Fields adds every entry of a map. Use Field for anything
// order-sensitive.
func (f *Form) Fields(values map[string]string) *Form {
	for name, value := range values {
		f.Field(name, value)
	}
	return f
}

// File attaches a file part.
func (f *Form) File(field, filename string, r io.Reader) *Form {
	f.files = append(f.files, formFile{field: field, filename: filename, reader: r})
	return f
}

// HasFiles reports whether any file part is attached.
func (f *Form) HasFiles() bool {
	return len(f.files) > 0
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.reader); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
