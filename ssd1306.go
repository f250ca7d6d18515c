package oled

func ssd1306Setup(width, height int) []byte {
	comPins := byte(0x12)
	if height == 32 || height == 16 {
		comPins = 0x02
	}
	return []byte{
		setDisplay | 0x00,
		setDisplayClockDiv, 0x80,
		setMultiplexRatio, byte(height - 1),
		setDisplayOffset, 0x00,
		setStartLine | 0x00,
		setChargePump, 0x14,
		setMemoryMode, 0x02, // page addressing
		setSegmentRemap | 0x01,
		setComScan | comScanReversed,
		setComPins, comPins,
		setContrast, 0xCF,
		setPrecharge, 0xF1,
		setVComDetect, 0x40,
		setDisplayAllOnResume,
		setNormalDisplay,
	}
}
