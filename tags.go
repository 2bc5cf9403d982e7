// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import "fmt"

// UnknownPrefix is used as prefix for unknown tags.
const UnknownPrefix = "UnknownTag_"

const (
	tagThumbnailOffset = 0x0201
	tagThumbnailLength = 0x0202
	tagExifPointer     = 0x8769
	tagGPSPointer      = 0x8825
	tagInteropPointer  = 0xa005
	tagUserComment     = 0x9286
)

// decodeRule selects how an entry that passed the shape check is turned into a Value.
type decodeRule uint8

const (
	ruleValues          decodeRule = iota // one element per count, by type
	ruleVersion                           // 4 inline chars, stored with a NUL terminator
	ruleComponents                        // component codes rendered as Y Cb Cr R G B
	ruleUserComment                       // 8 byte charset code and text, NUL appended
	ruleCFAPattern                        // repeat dimensions and color codes rendered as rows
	ruleThumbnailOffset                   // sets the thumbnail offset on the descriptor
	ruleThumbnailLength                   // sets the thumbnail length on the descriptor
	ruleIgnore                            // known, never stored
)

// tagDef declares the expected shape of a tag and how to decode it.
type tagDef struct {
	name     string
	rule     decodeRule
	types    typeMask
	minCount uint32
	maxCount uint32 // 0 means no upper bound
}

func (d tagDef) accepts(typ Type, count uint32) bool {
	if !d.types.has(typ) {
		return false
	}
	if count < d.minCount {
		return false
	}
	return d.maxCount == 0 || count <= d.maxCount
}

// exact returns the count bounds for n elements, where 0 means any count.
func exact(n uint32) (uint32, uint32) {
	return n, n
}

func numbers(name string, types typeMask, n uint32) tagDef {
	min, max := exact(n)
	return tagDef{name: name, rule: ruleValues, types: types, minCount: min, maxCount: max}
}

func ubytes(name string, n uint32) tagDef {
	return numbers(name, typesOf(TypeByte), n)
}

func shorts(name string, n uint32) tagDef {
	return numbers(name, typesOf(TypeShort), n)
}

func shortsRange(name string, min, max uint32) tagDef {
	return tagDef{name: name, rule: ruleValues, types: typesOf(TypeShort), minCount: min, maxCount: max}
}

func shortsOrLongs(name string, n uint32) tagDef {
	return numbers(name, typesOf(TypeShort, TypeLong), n)
}

func longs(name string, n uint32) tagDef {
	return numbers(name, typesOf(TypeLong), n)
}

func urationals(name string, n uint32) tagDef {
	return numbers(name, typesOf(TypeRational), n)
}

func srationals(name string, n uint32) tagDef {
	return numbers(name, typesOf(TypeSRational), n)
}

func undefined(name string, n uint32) tagDef {
	return numbers(name, typesOf(TypeUndefined), n)
}

func ascii(name string) tagDef {
	return tagDef{name: name, rule: ruleValues, types: typesOf(TypeASCII), minCount: 1}
}

func version(name string) tagDef {
	return tagDef{name: name, rule: ruleVersion, types: typesOf(TypeUndefined), minCount: 4, maxCount: 4}
}

func ignored(name string) tagDef {
	return tagDef{name: name, rule: ruleIgnore}
}

var tiffTags = map[uint16]tagDef{
	0x000b: ascii("ProcessingSoftware"),
	0x00fe: longs("NewSubfileType", 1),
	0x0100: shortsOrLongs("ImageWidth", 1),
	0x0101: shortsOrLongs("ImageLength", 1),
	0x0102: shortsOrLongs("BitsPerSample", 0),
	0x0103: shorts("Compression", 1),
	0x0106: shorts("PhotometricInterpretation", 1),
	0x010e: ascii("ImageDescription"),
	0x010f: ascii("Make"),
	0x0110: ascii("Model"),
	0x0111: shortsOrLongs("StripOffsets", 0),
	0x0112: shorts("Orientation", 1),
	0x0115: shorts("SamplesPerPixel", 1),
	0x0116: shortsOrLongs("RowsPerStrip", 1),
	0x0117: shortsOrLongs("StripByteCounts", 0),
	0x011a: urationals("XResolution", 1),
	0x011b: urationals("YResolution", 1),
	0x011c: shorts("PlanarConfiguration", 1),
	0x0128: shorts("ResolutionUnit", 1),
	0x0131: ascii("Software"),
	0x0132: ascii("DateTime"),
	0x013b: ascii("Artist"),
	0x013c: ascii("HostComputer"),
	0x013e: urationals("WhitePoint", 2),
	0x013f: urationals("PrimaryChromaticities", 6),
	0x0142: shortsOrLongs("TileWidth", 1),
	0x0143: shortsOrLongs("TileLength", 1),
	0x0144: longs("TileOffsets", 1),
	0x0145: shortsOrLongs("TileByteCounts", 1),
	0x0211: urationals("YCbCrCoefficients", 3),
	0x0212: shorts("YCbCrSubSampling", 2),
	0x0213: shorts("YCbCrPositioning", 1),
	0x0214: urationals("ReferenceBlackWhite", 6),
	0x8298: ascii("Copyright"),

	tagThumbnailOffset: {name: "ThumbnailOffset", rule: ruleThumbnailOffset, types: typesOf(TypeLong), minCount: 1, maxCount: 1},
	tagThumbnailLength: {name: "ThumbnailLength", rule: ruleThumbnailLength, types: typesOf(TypeLong), minCount: 1, maxCount: 1},

	// Exif tags written to IFD0 by some producers.
	0x1001: shortsOrLongs("RelatedImageWidth", 1),
	0x1002: shortsOrLongs("RelatedImageHeight", 1),
	0xa401: shorts("CustomRendered", 1),
	0xa402: shorts("ExposureMode", 1),
	0xa403: shorts("WhiteBalance", 1),
	0xa404: urationals("DigitalZoomRatio", 1),
	0xa405: shorts("FocalLengthIn35mmFilm", 1),
	0xa406: shorts("SceneCaptureType", 1),
	0xa407: shorts("GainControl", 1),
	0xa408: shorts("Contrast", 1),
	0xa409: shorts("Saturation", 1),
	0xa40a: shorts("Sharpness", 1),
	0xa40c: shorts("SubjectDistanceRange", 1),

	// Vendor tags, kept as raw data.
	0x0220: undefined("UnknownWiko1", 0),
	0x0221: undefined("UnknownWiko2", 0),
	0x0222: undefined("UnknownWiko3", 0),
	0x0223: undefined("UnknownWiko4", 0),
	0x889a: undefined("Unknown889a", 0),
	0x9a00: undefined("Unknown9a00", 0),
	0x9c9b: numbers("XPTitle", typesOf(TypeByte, TypeUndefined), 0),
	0x9c9c: numbers("XPComment", typesOf(TypeByte, TypeUndefined), 0),
	0x9c9d: numbers("XPAuthor", typesOf(TypeByte, TypeUndefined), 0),
	0x9c9e: numbers("XPKeywords", typesOf(TypeByte, TypeUndefined), 0),
	0x9c9f: numbers("XPSubject", typesOf(TypeByte, TypeUndefined), 0),
	0xc4a5: undefined("PrintIM", 0),
	0xc6d2: undefined("PanasonicTitle", 0),
	0xc6d3: undefined("PanasonicTitle2", 0),
	0xea1c: undefined("Padding", 0),
}

var exifTags = map[uint16]tagDef{
	0x829a: urationals("ExposureTime", 1),
	0x829d: urationals("FNumber", 1),
	0x8822: shorts("ExposureProgram", 1),
	0x8824: ascii("SpectralSensitivity"),
	0x8827: shorts("ISOSpeedRatings", 0),
	0x8828: undefined("OECF", 0),
	0x8830: shorts("SensitivityType", 1),
	0x8831: longs("StandardOutputSensitivity", 1),
	0x8832: longs("RecommendedExposureIndex", 1),
	0x9000: version("ExifVersion"),
	0x9003: ascii("DateTimeOriginal"),
	0x9004: ascii("DateTimeDigitized"),
	0x9010: ascii("OffsetTime"),
	0x9011: ascii("OffsetTimeOriginal"),
	0x9012: ascii("OffsetTimeDigitized"),
	0x9101: {name: "ComponentsConfiguration", rule: ruleComponents, types: typesOf(TypeUndefined), maxCount: 4},
	0x9102: urationals("CompressedBitsPerPixel", 1),
	0x9201: srationals("ShutterSpeedValue", 1),
	0x9202: urationals("ApertureValue", 1),
	0x9203: srationals("BrightnessValue", 1),
	0x9204: srationals("ExposureBiasValue", 1),
	0x9205: urationals("MaxApertureValue", 1),
	0x9206: urationals("SubjectDistance", 1),
	0x9207: shorts("MeteringMode", 1),
	0x9208: shorts("LightSource", 1),
	0x9209: shorts("Flash", 1),
	0x920a: urationals("FocalLength", 1),
	0x9214: shortsRange("SubjectArea", 2, 4),
	0x9286: {name: "UserComment", rule: ruleUserComment, types: typesOf(TypeUndefined), minCount: 8},
	0x9290: ascii("SubSecTime"),
	0x9291: ascii("SubSecTimeOriginal"),
	0x9292: ascii("SubSecTimeDigitized"),
	0xa000: version("FlashpixVersion"),
	0xa001: shorts("ColorSpace", 1),
	0xa002: shortsOrLongs("PixelXDimension", 1),
	0xa003: shortsOrLongs("PixelYDimension", 1),
	0xa004: ascii("RelatedSoundFile"),
	0xa20b: urationals("FlashEnergy", 1),
	0xa20c: ubytes("SpatialFrequencyResponse", 0),
	0xa20e: urationals("FocalPlaneXResolution", 1),
	0xa20f: urationals("FocalPlaneYResolution", 1),
	0xa210: shorts("FocalPlaneResolutionUnit", 1),
	0xa214: shorts("SubjectLocation", 2),
	0xa215: urationals("ExposureIndex", 1),
	0xa217: shorts("SensingMethod", 1),
	0xa300: undefined("FileSource", 1),
	0xa301: undefined("SceneType", 1),
	0xa302: {name: "CFAPattern", rule: ruleCFAPattern, types: typesOf(TypeUndefined), minCount: 5},
	0xa401: shorts("CustomRendered", 1),
	0xa402: shorts("ExposureMode", 1),
	0xa403: shorts("WhiteBalance", 1),
	0xa404: urationals("DigitalZoomRatio", 1),
	0xa405: shorts("FocalLengthIn35mmFilm", 1),
	0xa406: shorts("SceneCaptureType", 1),
	0xa407: shorts("GainControl", 1),
	0xa408: shorts("Contrast", 1),
	0xa409: shorts("Saturation", 1),
	0xa40a: shorts("Sharpness", 1),
	0xa40b: undefined("DeviceSettingDescription", 0),
	0xa40c: shorts("SubjectDistanceRange", 1),
	0xa420: ascii("ImageUniqueID"),
	0xa430: ascii("OwnerName"),
	0xa431: ascii("BodySerialNumber"),
	0xa432: urationals("LensSpecification", 4),
	0xa433: ascii("LensMake"),
	0xa434: ascii("LensModel"),
	0xa435: ascii("LensSerialNumber"),
	0xa460: shorts("CompositeImage", 1),
	0xa461: shorts("CompositeImageCount", 2),
	0xa462: undefined("CompositeImageExposureTimes", 0),
	0xa500: urationals("Gamma", 1),

	0x889a: ignored("Unknown889a"),
	0x927c: ignored("MakerNote"),
	0x9a00: ignored("Unknown9a00"),
	0xea1c: ignored("Padding"),
	0xea1d: ignored("OffsetSchema"),
}

var gpsTags = map[uint16]tagDef{
	0x00: ubytes("GPSVersionID", 4),
	0x01: ascii("GPSLatitudeRef"),
	0x02: urationals("GPSLatitude", 3),
	0x03: ascii("GPSLongitudeRef"),
	0x04: urationals("GPSLongitude", 3),
	0x05: ubytes("GPSAltitudeRef", 1),
	0x06: urationals("GPSAltitude", 1),
	0x07: urationals("GPSTimeStamp", 3),
	0x08: ascii("GPSSatellites"),
	0x09: ascii("GPSStatus"),
	0x0a: ascii("GPSMeasureMode"),
	0x0b: urationals("GPSDOP", 1),
	0x0c: ascii("GPSSpeedRef"),
	0x0d: urationals("GPSSpeed", 1),
	0x0e: ascii("GPSTrackRef"),
	0x0f: urationals("GPSTrack", 1),
	0x10: ascii("GPSImgDirectionRef"),
	0x11: urationals("GPSImgDirection", 1),
	0x12: ascii("GPSMapDatum"),
	0x13: ascii("GPSDestLatitudeRef"),
	0x14: urationals("GPSDestLatitude", 3),
	0x15: ascii("GPSDestLongitudeRef"),
	0x16: urationals("GPSDestLongitude", 3),
	0x17: ascii("GPSDestBearingRef"),
	0x18: urationals("GPSDestBearing", 1),
	0x19: ascii("GPSDestDistanceRef"),
	0x1a: urationals("GPSDestDistance", 1),
	0x1b: undefined("GPSProcessingMethod", 0),
	0x1c: undefined("GPSAreaInformation", 0),
	0x1d: ascii("GPSDateStamp"),
	0x1e: shorts("GPSDifferential", 1),
	0x1f: urationals("GPSHPositioningError", 1),

	0xea1c: ignored("Padding"),
}

var interopTags = map[uint16]tagDef{
	0x0001: ascii("InteroperabilityIndex"),
	0x0002: version("InteroperabilityVersion"),
	0x1000: ascii("RelatedImageFileFormat"),
	0x1001: shortsOrLongs("RelatedImageWidth", 1),
	0x1002: shortsOrLongs("RelatedImageHeight", 1),
}

// Primary and Thumbnail share the baseline TIFF vocabulary.
var tagTables = [namespaceCount]map[uint16]tagDef{
	Primary:   tiffTags,
	Thumbnail: tiffTags,
	Exif:      exifTags,
	GPS:       gpsTags,
	Interop:   interopTags,
}

// pointerTarget returns the namespace of the directory that tag in ns points to.
func pointerTarget(ns Namespace, tag uint16) (Namespace, bool) {
	switch ns {
	case Primary, Thumbnail:
		switch tag {
		case tagExifPointer:
			return Exif, true
		case tagGPSPointer:
			return GPS, true
		}
	case Exif:
		if tag == tagInteropPointer {
			return Interop, true
		}
	}
	return 0, false
}

var pointerNames = map[uint16]string{
	tagExifPointer:    "ExifIFDPointer",
	tagGPSPointer:     "GPSInfoIFDPointer",
	tagInteropPointer: "InteroperabilityIFDPointer",
}

func lookupTag(ns Namespace, tag uint16) (tagDef, bool) {
	if !ns.valid() {
		return tagDef{}, false
	}
	def, ok := tagTables[ns][tag]
	return def, ok
}

// TagName returns the name of tag in namespace ns,
// or UnknownPrefix followed by the tag number if the tag is not known.
func TagName(ns Namespace, tag uint16) string {
	if _, ok := pointerTarget(ns, tag); ok {
		return pointerNames[tag]
	}
	if def, ok := lookupTag(ns, tag); ok {
		return def.name
	}
	return fmt.Sprintf("%s0x%04x", UnknownPrefix, tag)
}
