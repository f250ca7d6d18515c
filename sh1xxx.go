package oled

// Opcodes shared by the SH1106 and SSD1306 page addressed controllers.
const (
	setLowColumn          = 0x00
	setHighColumn         = 0x10
	setMemoryMode         = 0x20
	setStartLine          = 0x40
	setContrast           = 0x81
	setChargePump         = 0x8D
	setSegmentRemap       = 0xA0
	setDisplayAllOnResume = 0xA4
	setNormalDisplay      = 0xA6
	setMultiplexRatio     = 0xA8
	setDCDC               = 0xAD
	setDisplay            = 0xAE
	setPageAddr           = 0xB0
	setComScan            = 0xC0
	setDisplayOffset      = 0xD3
	setDisplayClockDiv    = 0xD5
	setPrecharge          = 0xD9
	setComPins            = 0xDA
	setVComDetect         = 0xDB

	comScanReversed = 0x08
)

// Control bytes prefixed to every I²C transfer.
const (
	controlCommand = 0x80
	controlData    = 0x40
)
