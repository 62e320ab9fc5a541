package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/application/upload"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// indexedKey matches array form keys such as images[2] or variants[0][price]
var indexedKey = regexp.MustCompile(`^(\w+)\[(\d+)\](?:\[(\w+)\])?$`)

// isFormRequest reports whether the body is multipart or urlencoded
func isFormRequest(c *gin.Context) bool {
	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm, gin.MIMEPOSTForm:
		return true
	}
	return false
}

// FileFromHeader adapts a multipart file to the uploader
func FileFromHeader(fh *multipart.FileHeader) *upload.File {
	return &upload.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// formReader reads typed values out of a parsed form and collects
// conversion failures as validation details
type formReader struct {
	values url.Values
	files  map[string][]*multipart.FileHeader
	errs   []dto.ValidationDetail
}

// newFormReader parses the request body as multipart or urlencoded form
func newFormReader(c *gin.Context) (*formReader, error) {
	r := &formReader{files: map[string][]*multipart.FileHeader{}}
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		r.values = url.Values(form.Value)
		r.files = form.File
		return r, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	r.values = c.Request.PostForm
	return r, nil
}

func (r *formReader) has(key string) bool {
	_, ok := r.values[key]
	return ok
}

func (r *formReader) str(key string) string {
	return strings.TrimSpace(r.values.Get(key))
}

// optStr returns nil for a missing or blank value
func (r *formReader) optStr(key string) *string {
	v := r.str(key)
	if v == "" {
		return nil
	}
	return &v
}

func (r *formReader) int64Val(key string) *int64 {
	v := r.str(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.fail(key, fmt.Sprintf("The %s must be an integer.", strings.ReplaceAll(key, "_", " ")))
		return nil
	}
	return &n
}

func (r *formReader) intVal(key string) *int {
	n := r.int64Val(key)
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

func (r *formReader) floatVal(key string) *float64 {
	v := r.str(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(key, fmt.Sprintf("The %s must be a number.", strings.ReplaceAll(key, "_", " ")))
		return nil
	}
	return &f
}

func (r *formReader) boolVal(key string) bool {
	switch strings.ToLower(r.str(key)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func (r *formReader) fail(field, message string) {
	r.errs = append(r.errs, dto.ValidationDetail{Field: field, Message: message})
}

// formElement is one element of an array field, a string or a file
type formElement struct {
	index int
	value string
	file  *multipart.FileHeader
}

// list returns the elements of array field name in request order: indexed
// keys (name[0], name[1], ...) by index, then name[] and name values, then
// name[] and name files
func (r *formReader) list(name string) []formElement {
	var indexed []formElement
	for key, vs := range r.values {
		if m := indexedKey.FindStringSubmatch(key); m != nil && m[1] == name && m[3] == "" && len(vs) > 0 {
			i, _ := strconv.Atoi(m[2])
			indexed = append(indexed, formElement{index: i, value: vs[0]})
		}
	}
	for key, fs := range r.files {
		if m := indexedKey.FindStringSubmatch(key); m != nil && m[1] == name && m[3] == "" && len(fs) > 0 {
			i, _ := strconv.Atoi(m[2])
			indexed = append(indexed, formElement{index: i, file: fs[0]})
		}
	}
	sort.SliceStable(indexed, func(a, b int) bool { return indexed[a].index < indexed[b].index })

	out := indexed
	for _, key := range []string{name + "[]", name} {
		for _, v := range r.values[key] {
			out = append(out, formElement{value: v})
		}
	}
	for _, key := range []string{name + "[]", name} {
		for _, f := range r.files[key] {
			out = append(out, formElement{file: f})
		}
	}
	return out
}

// objects groups keys like name[0][field] into per-index value sets
func (r *formReader) objects(name string) []url.Values {
	byIndex := map[int]url.Values{}
	for key, vs := range r.values {
		m := indexedKey.FindStringSubmatch(key)
		if m == nil || m[1] != name || m[3] == "" {
			continue
		}
		i, _ := strconv.Atoi(m[2])
		if byIndex[i] == nil {
			byIndex[i] = url.Values{}
		}
		byIndex[i][m[3]] = vs
	}

	indexes := make([]int, 0, len(byIndex))
	for i := range byIndex {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	out := make([]url.Values, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, byIndex[i])
	}
	return out
}

// each calls fn with a reader over every object of array field name.
// Conversion failures are reported on r.
func (r *formReader) each(name string, fn func(obj *formReader)) {
	for _, values := range r.objects(name) {
		obj := &formReader{values: values, files: map[string][]*multipart.FileHeader{}}
		fn(obj)
		r.errs = append(r.errs, obj.errs...)
	}
}
