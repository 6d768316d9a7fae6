package exif

import (
	"fmt"
	"os"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	exif.RegisterParsers(mknote.All...)
}

// FileTagReader reads EXIF tags from image files on disk. It implements
// TagReader on top of goexif, flattening typed tag values into the raw
// dictionary shapes the extraction pipeline expects: rationals become
// "num/den" strings and text tags become plain strings.
type FileTagReader struct{}

// Read decodes the EXIF block of the file at path. Files without a
// decodable EXIF block return an error, which the pipeline treats as
// "no metadata available".
func (FileTagReader) Read(path string) (RawTags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, err
	}

	tags := RawTags{
		GroupGPS:  map[string]any{},
		GroupEXIF: map[string]any{},
		GroupIFD0: map[string]any{},
	}

	if comps, ok := rationalList(x, exif.GPSLatitude); ok {
		tags[GroupGPS][TagGPSLatitude] = comps
	}
	if ref, ok := textTag(x, exif.GPSLatitudeRef); ok {
		tags[GroupGPS][TagGPSLatitudeRef] = ref
	}
	if comps, ok := rationalList(x, exif.GPSLongitude); ok {
		tags[GroupGPS][TagGPSLongitude] = comps
	}
	if ref, ok := textTag(x, exif.GPSLongitudeRef); ok {
		tags[GroupGPS][TagGPSLongitudeRef] = ref
	}

	if v, ok := textTag(x, exif.DateTimeOriginal); ok {
		tags[GroupEXIF][TagDateTime] = v
	}
	if v, ok := textTag(x, exif.Make); ok {
		tags[GroupIFD0][TagMake] = v
	}
	if v, ok := textTag(x, exif.Model); ok {
		tags[GroupIFD0][TagModel] = v
	}

	return tags, nil
}

// rationalList renders every rational in the tag as a "num/den" string.
func rationalList(x *exif.Exif, name exif.FieldName) ([]any, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return nil, false
	}

	comps := make([]any, 0, int(tag.Count))
	for i := 0; i < int(tag.Count); i++ {
		num, den, err := tag.Rat2(i)
		if err != nil {
			return nil, false
		}
		comps = append(comps, fmt.Sprintf("%d/%d", num, den))
	}

	return comps, true
}

func textTag(x *exif.Exif, name exif.FieldName) (string, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return "", false
	}
	s, err := tag.StringVal()
	if err != nil {
		return "", false
	}
	return s, true
}
