// internal/models/size.go
package models

import "fmt"

// ImageSize is an output resolution for the image backend.
type ImageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s ImageSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

var ratioSizes = map[string]ImageSize{
	"1:1":  {Width: 1024, Height: 1024},
	"9:16": {Width: 768, Height: 1344},
	"3:4":  {Width: 896, Height: 1152},
	"4:3":  {Width: 1152, Height: 896},
	"16:9": {Width: 1344, Height: 768},
}

// SizeForRatio maps an aspect ratio label to a render size. Unknown or empty
// ratios fall back to square.
func SizeForRatio(ratio string) ImageSize {
	if s, ok := ratioSizes[ratio]; ok {
		return s
	}
	return ratioSizes["1:1"]
}
