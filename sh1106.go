package oled

func sh1106Setup(width, height int) []byte {
	return []byte{
		setDisplay | 0x00,
		setDisplayClockDiv, 0x80,
		setMultiplexRatio, byte(height - 1),
		setDisplayOffset, 0x00,
		setStartLine | 0x00,
		setDCDC, 0x8B,
		setSegmentRemap | 0x01,
		setComScan | comScanReversed,
		setComPins, 0x12,
		setContrast, 0x7F,
		setPrecharge, 0x22,
		setVComDetect, 0x20,
		setDisplayAllOnResume,
		setNormalDisplay,
	}
}
