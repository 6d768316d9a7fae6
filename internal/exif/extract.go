package exif

// Tag groups and names as exposed by EXIF readers.
const (
	GroupGPS  = "GPS"
	GroupEXIF = "EXIF"
	GroupIFD0 = "IFD0"

	TagGPSLatitude     = "GPSLatitude"
	TagGPSLatitudeRef  = "GPSLatitudeRef"
	TagGPSLongitude    = "GPSLongitude"
	TagGPSLongitudeRef = "GPSLongitudeRef"
	TagDateTime        = "DateTimeOriginal"
	TagMake            = "Make"
	TagModel           = "Model"
)

// RawTags is a loosely-typed tag dictionary: group name to tag name to
// raw value. Values are plain numbers, numeric strings, "a/b" rational
// strings, or ordered lists of three such values for GPS coordinates.
type RawTags map[string]map[string]any

// TagReader supplies the raw tag dictionary for a stored file. A non-nil
// error means no metadata is available for the file; the pipeline treats
// that the same as an empty dictionary.
type TagReader interface {
	Read(path string) (RawTags, error)
}

// Metadata is the capture metadata extracted from a single photo.
// Every field is optional; a photo without usable tags yields the zero
// value with all fields nil.
type Metadata struct {
	Latitude    *float64
	Longitude   *float64
	CapturedAt  *string
	CameraMake  *string
	CameraModel *string
}

// HasLocation reports whether both coordinates were derivable.
func (m Metadata) HasLocation() bool {
	return m.Latitude != nil && m.Longitude != nil
}

// Extract reads the tag dictionary for path and assembles a Metadata
// record. It never fails: a missing reader, a read error, or missing
// tags all degrade to nil fields. Latitude and longitude are derived
// independently, a malformed value on one axis does not affect the
// other.
func Extract(path string, reader TagReader) Metadata {
	if reader == nil {
		return Metadata{}
	}

	tags, err := reader.Read(path)
	if err != nil || tags == nil {
		return Metadata{}
	}

	var m Metadata

	if lat, ok := coordinate(tags, TagGPSLatitude, TagGPSLatitudeRef); ok {
		m.Latitude = &lat
	}
	if lon, ok := coordinate(tags, TagGPSLongitude, TagGPSLongitudeRef); ok {
		m.Longitude = &lon
	}

	m.CapturedAt = stringTag(tags, GroupEXIF, TagDateTime)
	m.CameraMake = stringTag(tags, GroupIFD0, TagMake)
	m.CameraModel = stringTag(tags, GroupIFD0, TagModel)

	return m
}

// coordinate resolves one GPS axis from its component list and
// hemisphere marker tag.
func coordinate(tags RawTags, tag, refTag string) (float64, bool) {
	group, ok := tags[GroupGPS]
	if !ok {
		return 0, false
	}

	var components []any
	switch v := group[tag].(type) {
	case []any:
		components = v
	case []string:
		components = make([]any, len(v))
		for i, s := range v {
			components[i] = s
		}
	default:
		return 0, false
	}

	ref, _ := group[refTag].(string)

	return DMSToDecimal(components, ref)
}

func stringTag(tags RawTags, group, tag string) *string {
	g, ok := tags[group]
	if !ok {
		return nil
	}
	s, ok := g[tag].(string)
	if !ok {
		return nil
	}
	return &s
}
