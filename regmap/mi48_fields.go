package regmap

import (
	"fmt"
	"strconv"
)

// Field names of the MI48 register map.
const (
	SW_RESET            Name = "SW_RESET"
	DMA_TIMEOUT_ENABLE  Name = "DMA_TIMEOUT_ENABLE"
	TIMEOUT_PERIOD      Name = "TIMEOUT_PERIOD"
	STOP_HOST_XFER      Name = "STOP_HOST_XFER"
	REQ_RETRANSMIT      Name = "REQ_RETRANSMIT"
	AUTO_RETRANSMIT     Name = "AUTO_RETRANSMIT"
	GET_SINGLE_FRAME    Name = "GET_SINGLE_FRAME"
	CONTINUOUS_STREAM   Name = "CONTINUOUS_STREAM"
	READOUT_MODE        Name = "READOUT_MODE"
	NO_HEADER           Name = "NO_HEADER"
	FW_VERSION_MAJOR    Name = "FW_VERSION_MAJOR"
	FW_VERSION_MINOR    Name = "FW_VERSION_MINOR"
	FW_VERSION_BUILD    Name = "FW_VERSION_BUILD"
	FRAME_RATE_DIVIDER  Name = "FRAME_RATE_DIVIDER"
	SLEEP_PERIOD        Name = "SLEEP_PERIOD"
	PERIOD_X100         Name = "PERIOD_X100"
	SLEEP               Name = "SLEEP"
	READOUT_TOO_SLOW    Name = "READOUT_TOO_SLOW"
	SENXOR_IF_ERROR     Name = "SENXOR_IF_ERROR"
	CAPTURE_ERROR       Name = "CAPTURE_ERROR"
	DATA_READY          Name = "DATA_READY"
	BOOTING_UP          Name = "BOOTING_UP"
	CLK_SLOW_DOWN       Name = "CLK_SLOW_DOWN"
	MODULE_GAIN         Name = "MODULE_GAIN"
	SENXOR_TYPE         Name = "SENXOR_TYPE"
	MODULE_TYPE         Name = "MODULE_TYPE"
	MCU_TYPE            Name = "MCU_TYPE"
	LUT_SOURCE          Name = "LUT_SOURCE"
	LUT_SELECTOR        Name = "LUT_SELECTOR"
	LUT_VERSION         Name = "LUT_VERSION"
	CORR_FACTOR         Name = "CORR_FACTOR"
	START_COLOFFS_CALIB Name = "START_COLOFFS_CALIB"
	COLOFFS_CALIB_ON    Name = "COLOFFS_CALIB_ON"
	USE_SELF_CALIB      Name = "USE_SELF_CALIB"
	CALIB_SAMPLE_SIZE   Name = "CALIB_SAMPLE_SIZE"
	EMISSIVITY          Name = "EMISSIVITY"
	OFFSET              Name = "OFFSET"
	OTF                 Name = "OTF"
	PRODUCTION_YEAR     Name = "PRODUCTION_YEAR"
	PRODUCTION_WEEK     Name = "PRODUCTION_WEEK"
	MANUF_LOCATION      Name = "MANUF_LOCATION"
	SERIAL_NUMBER       Name = "SERIAL_NUMBER"
	USER_FLASH_ENABLE   Name = "USER_FLASH_ENABLE"
	TEMP_UNITS          Name = "TEMP_UNITS"
	STARK_ENABLE        Name = "STARK_ENABLE"
	STARK_TYPE          Name = "STARK_TYPE"
	SPATIAL_KERNEL      Name = "SPATIAL_KERNEL"
	STARK_CUTOFF        Name = "STARK_CUTOFF"
	STARK_GRADIENT      Name = "STARK_GRADIENT"
	STARK_SCALE         Name = "STARK_SCALE"
	MMS_KXMS            Name = "MMS_KXMS"
	MMS_RA              Name = "MMS_RA"
	MEDIAN_ENABLE       Name = "MEDIAN_ENABLE"
	MEDIAN_KERNEL_SIZE  Name = "MEDIAN_KERNEL_SIZE"
	TEMPORAL_ENABLE     Name = "TEMPORAL_ENABLE"
	TEMPORAL_INIT       Name = "TEMPORAL_INIT"
	TEMPORAL            Name = "TEMPORAL"

	LOW_NETD_ROW_IN_HEADER Name = "LOW_NETD_ROW_IN_HEADER"
	ROLLING_AVERAGE_ENABLE Name = "ROLLING_AVERAGE_ENABLE"
	ROLLING_AVERAGE        Name = "ROLLING_AVERAGE"
	NETD_FACTOR            Name = "NETD_FACTOR"
	NETD_PIXEL_X           Name = "NETD_PIXEL_X"
	NETD_PIXEL_Y           Name = "NETD_PIXEL_Y"
	NETD_ENABLE            Name = "NETD_ENABLE"
	NETD_ROW_IN_FRAME      Name = "NETD_ROW_IN_FRAME"
)

// SenxorTypes names the values of the SENXOR_TYPE field.
var SenxorTypes = map[uint32]string{
	1: "MI0801",
	4: "MI0802 rev.1",
	5: "MI0802 rev.2",
	6: "MI16XX rev.1",
}

// MCUTypes names the values of the MCU_TYPE field.
var MCUTypes = map[uint32]string{
	0:    "MI48D4",
	1:    "MI48D5",
	2:    "MI48E",
	3:    "MI48G",
	4:    "MI48C",
	0xFF: "MI48D4",
}

var (
	enumTimeoutPeriod = map[uint32]string{0: "500 ms", 1: "1000 ms", 2: "2000 ms", 3: "100 ms"}
	enumReadoutMode   = map[uint32]string{0: "Full-Frame Readout Mode"}
	enumModuleGain    = map[uint32]string{
		0: "maximum: 1.0",
		1: "auto: 1.0, 0.5, or 0.25",
		2: "quarter: 0.25",
		3: "half: 0.5",
		4: "maximum: 1.0",
	}
	enumLUTSource   = map[uint32]string{0: "Module flash", 1: "FW"}
	enumLUTFlash    = map[uint32]string{0: "Default LUT"}
	enumLUTFirmware = map[uint32]string{0: "Generic LUT", 2: "Extended LUT"}
	enumTempUnits   = map[uint32]string{
		0: "0.1 K",
		1: "0.1 °C",
		2: "0.1 °F",
		4: "1 K",
		5: "1 °C",
		6: "1 °F",
	}
	enumStarkType = map[uint32]string{
		0: "Quick Stark",
		1: "Stark V1(auto)",
		2: "Stark V2",
		3: "Stark V1(Background Smooth)",
		4: "Full Stark",
		5: "Quick Stark",
		6: "Quick Stark",
		7: "Quick Stark",
	}
	enumKernel = map[uint32]string{0: "3x3", 1: "5x5"}
)

func bits(addr Addr, offset, width uint8) []Segment {
	return []Segment{{Addr: addr, Offset: offset, Width: width}}
}

func octets(addrs ...Addr) []Segment {
	segs := make([]Segment, len(addrs))
	for i, addr := range addrs {
		segs[i] = Segment{Addr: addr, Width: 8}
	}
	return segs
}

func formatBool(v uint32, _ Lookup) string {
	return strconv.FormatBool(v != 0)
}

func formatFrameRateDivider(v uint32, _ Lookup) string {
	if v <= 1 {
		return "MAX FPS"
	}
	return fmt.Sprintf("1/%d MAX FPS", v)
}

func formatSleepPeriod(v uint32, lookup Lookup) string {
	if x100, ok := lookup(PERIOD_X100); ok && x100 == 1 {
		return fmt.Sprintf("%d s", v)
	}
	return fmt.Sprintf("%d ms", v*10)
}

func formatLUTSelector(v uint32, lookup Lookup) string {
	enum := enumLUTFlash
	if src, ok := lookup(LUT_SOURCE); ok && src != 0 {
		enum = enumLUTFirmware
	}
	if s, ok := enum[v]; ok {
		return s
	}
	return "N/A"
}

func formatCalibSampleSize(v uint32, _ Lookup) string {
	return fmt.Sprintf("%d frames", (v+1)*100)
}

func formatOffset(v uint32, _ Lookup) string {
	return fmt.Sprintf("%.1f K", float64(int8(v))/10)
}

func formatOTF(v uint32, _ Lookup) string {
	return fmt.Sprintf("%.2f", float64(int8(v))/100+1)
}

var mi48Fields = []Field{
	{
		Name: SW_RESET, Group: "MCU_RESET", Writable: true, Type: "bool",
		Desc:     "Software Reset",
		Help:     "Set to 1 to reset the MI48. Cleared automatically once the reset completes.",
		Segments: bits(REG_MCU_RESET, 0, 1), Format: formatBool,
	},
	{
		Name: DMA_TIMEOUT_ENABLE, Group: "HOST_XFER_CTRL", Readable: true, Writable: true, Type: "bool",
		Desc:     "DMA Timeout Control",
		Help:     "SPI only. Enables DMA timeout monitoring of the SPI transfer, see TIMEOUT_PERIOD.",
		Segments: bits(REG_HOST_XFER_CTRL, 0, 1), Format: formatBool,
	},
	{
		Name: TIMEOUT_PERIOD, Group: "HOST_XFER_CTRL", Readable: true, Writable: true, Type: "uint2",
		Desc:     "Select timeout period for DMA",
		Help:     "0: 500 ms, 1: 1000 ms, 2: 2000 ms, 3: 100 ms (default).",
		Segments: bits(REG_HOST_XFER_CTRL, 1, 2), Enum: enumTimeoutPeriod,
	},
	{
		Name: STOP_HOST_XFER, Group: "HOST_XFER_CTRL", Readable: true, Writable: true, Type: "bool",
		Desc:     "Reset SPI transfer between host and MI48",
		Help:     "SPI only. Set to 1 to stop and reset host SPI DMA; self-clears when the reset completes.",
		Segments: bits(REG_HOST_XFER_CTRL, 3, 1), Format: formatBool,
	},
	{
		Name: REQ_RETRANSMIT, Group: "SPI_RTY", Readable: true, Writable: true, Type: "bool",
		Desc:     "Request retransmission from MI48",
		Segments: bits(REG_SPI_RTY, 0, 1), Format: formatBool,
	},
	{
		Name: AUTO_RETRANSMIT, Group: "SPI_RTY", Readable: true, Writable: true, Type: "bool",
		Desc:     "Enable automatic retransmission on SPI timeout",
		Segments: bits(REG_SPI_RTY, 1, 1), Format: formatBool,
	},
	{
		Name: GET_SINGLE_FRAME, Group: "FRAME_MODE", Readable: true, Writable: true, Type: "bool",
		Desc: "Acquire a single frame",
		Help: "Setting this bit acquires one frame; it is reset to 0 after the acquisition. " +
			"Writing 1 again before DATA_READY restarts the acquisition.",
		Segments: bits(REG_FRAME_MODE, 0, 1), Format: formatBool,
	},
	{
		Name: CONTINUOUS_STREAM, Group: "FRAME_MODE", Readable: true, Writable: true, Type: "bool",
		Desc: "Enable continuous capture mode",
		Help: "1 makes the MI48 continuously acquire frames into the readout buffer. " +
			"0 stops acquisition and clears DATA_READY.",
		Segments: bits(REG_FRAME_MODE, 1, 1), Format: formatBool,
	},
	{
		Name: READOUT_MODE, Group: "FRAME_MODE", Readable: true, Writable: true, Type: "uint3",
		Desc:     "Configure the readout mode",
		Help:     "Only 0, Full-Frame Readout Mode, is implemented. 1-7 are reserved.",
		Segments: bits(REG_FRAME_MODE, 2, 3), Enum: enumReadoutMode,
	},
	{
		Name: NO_HEADER, Group: "FRAME_MODE", Readable: true, Writable: true, Type: "bool",
		Desc:     "Eliminate header from Thermal Data Frame",
		Segments: bits(REG_FRAME_MODE, 5, 1), Format: formatBool,
	},
	{
		Name: FW_VERSION_MAJOR, Group: "FW_VERSION_1", Readable: true, Type: "uint4",
		Desc:     "Major Firmware Version Number",
		Segments: bits(REG_FW_VERSION_1, 4, 4),
	},
	{
		Name: FW_VERSION_MINOR, Group: "FW_VERSION_1", Readable: true, Type: "uint4",
		Desc:     "Minor Firmware Version Number",
		Segments: bits(REG_FW_VERSION_1, 0, 4),
	},
	{
		Name: FW_VERSION_BUILD, Group: "FW_VERSION_2", Readable: true, Type: "uint8",
		Desc:     "Firmware build number",
		Segments: octets(REG_FW_VERSION_2),
	},
	{
		Name: FRAME_RATE_DIVIDER, Group: "FRAME_RATE", Readable: true, Writable: true, Type: "uint7",
		Desc:     "Frame rate divider value",
		Help:     "FPS = FPS_MAX / FRAME_RATE_DIVIDER; 0 also yields FPS_MAX.",
		Segments: bits(REG_FRAME_RATE, 0, 7), Format: formatFrameRateDivider,
	},
	{
		Name: SLEEP_PERIOD, Group: "SLEEP_MODE", Readable: true, Writable: true, Type: "uint6",
		Desc:     "Sleep period duration",
		Help:     "Time spent in low power mode after every frame readout, in 10 ms units or in seconds when PERIOD_X100 is set.",
		Segments: bits(REG_SLEEP_MODE, 0, 6), Format: formatSleepPeriod,
	},
	{
		Name: PERIOD_X100, Group: "SLEEP_MODE", Readable: true, Writable: true, Type: "bool",
		Desc:     "Set sleep period units to seconds",
		Segments: bits(REG_SLEEP_MODE, 6, 1), Format: formatBool,
	},
	{
		Name: SLEEP, Group: "SLEEP_MODE", Readable: true, Writable: true, Type: "bool",
		Desc: "Enter low power sleep mode",
		Help: "Powers down the camera module and puts the MI48 to sleep. Cleared when the MI48 is addressed over I2C; " +
			"wait 50 ms before capturing afterwards.",
		Segments: bits(REG_SLEEP_MODE, 7, 1), Format: formatBool,
	},
	{
		Name: READOUT_TOO_SLOW, Group: "STATUS", Readable: true, Type: "bool",
		Desc:     "Last frame readout was too slow",
		Help:     "Continuous capture only: the last frame was not read out within one frame period. Reset upon read.",
		Segments: bits(REG_STATUS, 1, 1), Format: formatBool,
	},
	{
		Name: SENXOR_IF_ERROR, Group: "STATUS", Readable: true, Type: "bool",
		Desc:     "Error detected on SenXor interface during power up",
		Segments: bits(REG_STATUS, 2, 1), Format: formatBool,
	},
	{
		Name: CAPTURE_ERROR, Group: "STATUS", Readable: true, Type: "bool",
		Desc:     "Communication error during thermal data capture",
		Segments: bits(REG_STATUS, 3, 1), Format: formatBool,
	},
	{
		Name: DATA_READY, Group: "STATUS", Readable: true, Type: "bool",
		Desc:     "Data ready status flag",
		Help:     "Mirrors the DATA_READY pin. Leave a few milliseconds between polls to avoid lowering the frame rate.",
		Segments: bits(REG_STATUS, 4, 1), Format: formatBool,
	},
	{
		Name: BOOTING_UP, Group: "STATUS", Readable: true, Type: "bool",
		Desc:     "MI48xx boot status",
		Segments: bits(REG_STATUS, 5, 1), Format: formatBool,
	},
	{
		Name: CLK_SLOW_DOWN, Group: "CLK_SPEED", Readable: true, Writable: true, Type: "bool",
		Desc:     "Reduce internal clock speed",
		Segments: bits(REG_CLK_SPEED, 0, 1), Format: formatBool,
	},
	{
		Name: MODULE_GAIN, Group: "SENXOR_GAIN", Readable: true, Writable: true, Type: "uint4",
		Desc:     "SenXor array signal amplification",
		Help:     "0/4: gain 1.0, 1: automatic, 2: 0.25, 3: 0.5. 5-15 are reserved.",
		Segments: bits(REG_SENXOR_GAIN, 0, 4), Enum: enumModuleGain,
	},
	{
		Name: SENXOR_TYPE, Group: "SENXOR_TYPE", Readable: true, Type: "uint8",
		Desc:     "SenXor chip type identifier",
		Segments: octets(REG_SENXOR_TYPE), Enum: SenxorTypes,
	},
	{
		Name: MODULE_TYPE, Group: "MODULE_TYPE", Readable: true, Type: "uint8",
		Desc:     "Camera module type identifier",
		Segments: octets(REG_MODULE_TYPE),
	},
	{
		Name: MCU_TYPE, Group: "MCU_TYPE", Readable: true, Type: "uint8",
		Desc:     "MCU type identifier",
		Segments: octets(REG_MCU_TYPE), Enum: MCUTypes,
	},
	{
		Name: LUT_SOURCE, Group: "TEMP_CONVERT_CTRL", Readable: true, Writable: true, Type: "bool",
		Desc:     "Select LUT source",
		Segments: bits(REG_TEMP_CONVERT_CTRL, 0, 1), Enum: enumLUTSource,
	},
	{
		Name: LUT_SELECTOR, Group: "TEMP_CONVERT_CTRL", Readable: true, Writable: true, Type: "uint3",
		Desc:     "Select specific LUT based on source",
		Help:     "Module flash source: 0 default LUT. FW source: 0 generic LUT, 2 extended LUT.",
		Segments: bits(REG_TEMP_CONVERT_CTRL, 1, 3), Format: formatLUTSelector,
	},
	{
		Name: LUT_VERSION, Group: "TEMP_CONVERT_CTRL", Readable: true, Type: "uint4",
		Desc:     "Look-up-table version",
		Segments: bits(REG_TEMP_CONVERT_CTRL, 4, 4),
	},
	{
		Name: CORR_FACTOR, Group: "SENSITIVITY_FACTOR", Readable: true, Writable: true, Type: "uint8",
		Desc:     "Temperature readout correction factor",
		Segments: octets(REG_SENSITIVITY_FACTOR),
	},
	{
		Name: START_COLOFFS_CALIB, Group: "SELF_CALIBRATION", Readable: true, Writable: true, Type: "bool",
		Desc:     "Start column offsets calibration",
		Segments: bits(REG_SELF_CALIBRATION, 1, 1), Format: formatBool,
	},
	{
		Name: COLOFFS_CALIB_ON, Group: "SELF_CALIBRATION", Readable: true, Type: "bool",
		Desc:     "Column offsets calibration status",
		Segments: bits(REG_SELF_CALIBRATION, 2, 1), Format: formatBool,
	},
	{
		Name: USE_SELF_CALIB, Group: "SELF_CALIBRATION", Readable: true, Writable: true, Type: "bool",
		Desc:     "Use self-calibration data",
		Help:     "Requires MODULE_TYPE to be set correctly before self-calibration.",
		Segments: bits(REG_SELF_CALIBRATION, 4, 1), Format: formatBool,
	},
	{
		Name: CALIB_SAMPLE_SIZE, Group: "SELF_CALIBRATION", Readable: true, Writable: true, Type: "uint3",
		Desc:     "Number of calibration frames",
		Segments: bits(REG_SELF_CALIBRATION, 5, 3), Format: formatCalibSampleSize,
	},
	{
		Name: EMISSIVITY, Group: "EMISSIVITY", Readable: true, Writable: true, Type: "uint8",
		Desc:     "Target object emissivity value (percent)",
		Help:     "Valid range 1 to 100, default 100. The device clamps values outside the range.",
		Segments: octets(REG_EMISSIVITY),
		Format:   func(v uint32, _ Lookup) string { return fmt.Sprintf("%d%%", v) },
	},
	{
		Name: OFFSET, Group: "OFFSET_CORR", Readable: true, Writable: true, Type: "int8",
		Desc:     "Temperature offset correction",
		Help:     "Two's complement offset in 0.1 K applied to every pixel, -12.8 K to +12.7 K.",
		Segments: octets(REG_OFFSET_CORR), Format: formatOffset,
	},
	{
		Name: OTF, Group: "OBJECT_TEMP_FACTOR", Readable: true, Writable: true, Type: "int8",
		Desc:     "Object temperature correction factor",
		Help:     "Corrected = Raw * (1 + int8(OTF) * 0.01).",
		Segments: octets(REG_OBJECT_TEMP_FACTOR), Format: formatOTF,
	},
	{
		Name: PRODUCTION_YEAR, Group: "SENXOR_ID", Readable: true, Type: "uint8",
		Desc:     "Production year (19-99, offset from 2000)",
		Segments: octets(REG_SENXOR_ID_0),
		Format:   func(v uint32, _ Lookup) string { return strconv.Itoa(int(v) + 2000) },
	},
	{
		Name: PRODUCTION_WEEK, Group: "SENXOR_ID", Readable: true, Type: "uint8",
		Desc:     "Production week (1-52)",
		Segments: octets(REG_SENXOR_ID_1),
	},
	{
		Name: MANUF_LOCATION, Group: "SENXOR_ID", Readable: true, Type: "uint8",
		Desc:     "Manufacturing location (0-99)",
		Segments: octets(REG_SENXOR_ID_2),
	},
	{
		Name: SERIAL_NUMBER, Group: "SENXOR_ID", Readable: true, Type: "uint24",
		Desc:     "Serial number of the camera module",
		Segments: octets(REG_SENXOR_ID_5, REG_SENXOR_ID_4, REG_SENXOR_ID_3),
	},
	{
		Name: USER_FLASH_ENABLE, Group: "USER_FLASH_CTRL", Readable: true, Writable: true, Type: "bool",
		Desc:     "Enable host access to User Flash",
		Help:     "Maps the 128-byte user flash at 0x00-0x7F. Clear it again to access the standard registers.",
		Segments: bits(REG_USER_FLASH_CTRL, 0, 1), Format: formatBool,
	},
	{
		Name: TEMP_UNITS, Group: "FRAME_FORMAT", Readable: true, Writable: true, Type: "uint3",
		Desc:     "Temperature units selection",
		Segments: bits(REG_FRAME_FORMAT, 0, 3), Enum: enumTempUnits,
	},
	{
		Name: STARK_ENABLE, Group: "STARK_CTRL", Readable: true, Writable: true, Type: "bool",
		Desc:     "Enable STARK denoising filter",
		Segments: bits(REG_STARK_CTRL, 0, 1), Format: formatBool,
	},
	{
		Name: STARK_TYPE, Group: "STARK_CTRL", Readable: true, Writable: true, Type: "uint3",
		Desc:     "STARK filter type selection",
		Segments: bits(REG_STARK_CTRL, 1, 3), Enum: enumStarkType,
	},
	{
		Name: SPATIAL_KERNEL, Group: "STARK_CTRL", Readable: true, Writable: true, Type: "bool",
		Desc:     "Kernel size for spatial operations",
		Segments: bits(REG_STARK_CTRL, 4, 1), Enum: enumKernel,
	},
	{
		Name: STARK_CUTOFF, Group: "STARK_CUTOFF", Readable: true, Writable: true, Type: "uint7",
		Desc:     "Noise suppression cutoff value",
		Help:     "Lower values suppress more noise. Recommended 16-96, default 32.",
		Segments: bits(REG_STARK_CUTOFF, 0, 7),
	},
	{
		Name: STARK_GRADIENT, Group: "STARK_GRAD", Readable: true, Writable: true, Type: "uint8",
		Desc:     "Filter output transition steepness",
		Segments: octets(REG_STARK_GRAD),
	},
	{
		Name: STARK_SCALE, Group: "STARK_SCALE", Readable: true, Writable: true, Type: "uint8",
		Desc:     "Maximum allowed output change percentage",
		Segments: octets(REG_STARK_SCALE),
	},
	{
		Name: MMS_KXMS, Group: "MMS_CTRL", Readable: true, Writable: true, Type: "bool",
		Desc:     "Enable k-extrema median stabilization",
		Segments: bits(REG_MMS_CTRL, 0, 1), Format: formatBool,
	},
	{
		Name: MMS_RA, Group: "MMS_CTRL", Readable: true, Writable: true, Type: "bool",
		Desc:     "Enable rolling average min/max stabilization",
		Segments: bits(REG_MMS_CTRL, 1, 1), Format: formatBool,
	},
	{
		Name: MEDIAN_ENABLE, Group: "MEDIAN_CTRL", Readable: true, Writable: true, Type: "bool",
		Desc:     "Enable Median denoising filter",
		Segments: bits(REG_MEDIAN_CTRL, 0, 1), Format: formatBool,
	},
	{
		Name: MEDIAN_KERNEL_SIZE, Group: "MEDIAN_CTRL", Readable: true, Writable: true, Type: "bool",
		Desc:     "Sets median filter kernel size",
		Segments: bits(REG_MEDIAN_CTRL, 1, 1), Enum: enumKernel,
	},
	{
		Name: TEMPORAL_ENABLE, Group: "FILTER_CONTROL", Readable: true, Writable: true, Type: "bool",
		Desc:     "Enable temporal domain filtering",
		Segments: bits(REG_FILTER_CONTROL, 0, 1), Format: formatBool,
	},
	{
		Name: TEMPORAL_INIT, Group: "FILTER_CONTROL", Readable: true, Writable: true, Type: "bool",
		Desc:     "Initialize temporal filter",
		Help:     "Set after changing TEMPORAL for the new strength to take effect. Cleared automatically.",
		Segments: bits(REG_FILTER_CONTROL, 1, 1), Format: formatBool,
	},
	{
		Name: TEMPORAL, Group: "FILTER_SETTING_1", Readable: true, Writable: true, Type: "uint16",
		Desc:     "Temporal filter strength",
		Segments: octets(REG_FILTER_SETTING_1_1, REG_FILTER_SETTING_1_0),
	},
	{
		Name: LOW_NETD_ROW_IN_HEADER, Group: "FRAME_MODE", Readable: true, Writable: true, Type: "bool",
		Desc:     "Report the low NETD row in the frame header",
		Segments: bits(REG_FRAME_MODE, 6, 1), Format: formatBool,
	},
	{
		Name: ROLLING_AVERAGE_ENABLE, Group: "FILTER_CONTROL", Readable: true, Writable: true, Type: "bool",
		Desc:     "Enable rolling average filtering",
		Segments: bits(REG_FILTER_CONTROL, 2, 1), Format: formatBool,
	},
	{
		Name: ROLLING_AVERAGE, Group: "FILTER_SETTING_2", Readable: true, Writable: true, Type: "uint8",
		Desc:     "Rolling average filter depth",
		Help:     "Number of frames averaged while ROLLING_AVERAGE_ENABLE is set.",
		Segments: octets(REG_FILTER_SETTING_2),
	},
	{
		Name: NETD_FACTOR, Group: "NETD_FACTOR", Readable: true, Writable: true, Type: "uint8",
		Desc:     "NETD measurement factor",
		Segments: octets(REG_NETD_FACTOR),
	},
	{
		Name: NETD_PIXEL_X, Group: "NETD_PIXEL_X", Readable: true, Writable: true, Type: "uint8",
		Desc:     "Column of the pixel used for NETD measurement",
		Segments: octets(REG_NETD_PIXEL_X),
	},
	{
		Name: NETD_PIXEL_Y, Group: "NETD_PIXEL_Y", Readable: true, Writable: true, Type: "uint8",
		Desc:     "Row of the pixel used for NETD measurement",
		Segments: octets(REG_NETD_PIXEL_Y),
	},
	{
		Name: NETD_ENABLE, Group: "NETD_CONFIG", Readable: true, Writable: true, Type: "bool",
		Desc:     "Enable NETD measurement",
		Segments: bits(REG_NETD_CONFIG, 0, 1), Format: formatBool,
	},
	{
		Name: NETD_ROW_IN_FRAME, Group: "NETD_CONFIG", Readable: true, Writable: true, Type: "bool",
		Desc:     "Append the NETD row to the thermal data frame",
		Help:     "Only effective while NETD_ENABLE is set.",
		Segments: bits(REG_NETD_CONFIG, 1, 1), Format: formatBool,
	},
}
