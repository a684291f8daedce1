package utils

import (
	"github.com/common-nighthawk/go-figure"
)

func DrawBanner() {
	banner := figure.NewColorFigure("crc", "larry3d", "blue", true)
	banner.Print()
}
