package regmap

// Register addresses of the MI48 host interface.
const (
	REG_MCU_RESET          Addr = 0x00
	REG_HOST_XFER_CTRL     Addr = 0x01
	REG_SPI_RTY            Addr = 0x19
	REG_STARK_CTRL         Addr = 0x20
	REG_STARK_CUTOFF       Addr = 0x21
	REG_STARK_GRAD         Addr = 0x22
	REG_STARK_SCALE        Addr = 0x23
	REG_MMS_CTRL           Addr = 0x25
	REG_MEDIAN_CTRL        Addr = 0x30
	REG_FRAME_FORMAT       Addr = 0x31
	REG_MCU_TYPE           Addr = 0x33
	REG_FRAME_MODE         Addr = 0xB1
	REG_FW_VERSION_1       Addr = 0xB2
	REG_FW_VERSION_2       Addr = 0xB3
	REG_FRAME_RATE         Addr = 0xB4
	REG_SLEEP_MODE         Addr = 0xB5
	REG_STATUS             Addr = 0xB6
	REG_CLK_SPEED          Addr = 0xB7
	REG_SENXOR_GAIN        Addr = 0xB9
	REG_SENXOR_TYPE        Addr = 0xBA
	REG_MODULE_TYPE        Addr = 0xBB
	REG_TEMP_CONVERT_CTRL  Addr = 0xBC
	REG_SENSITIVITY_FACTOR Addr = 0xC2
	REG_SELF_CALIBRATION   Addr = 0xC5
	REG_EMISSIVITY         Addr = 0xCA
	REG_OFFSET_CORR        Addr = 0xCB
	REG_OBJECT_TEMP_FACTOR Addr = 0xCD
	REG_FILTER_CONTROL     Addr = 0xD0
	REG_FILTER_SETTING_1_0 Addr = 0xD1
	REG_FILTER_SETTING_1_1 Addr = 0xD2
	REG_FILTER_SETTING_2   Addr = 0xD3
	REG_NETD_CONFIG        Addr = 0xD4
	REG_NETD_FACTOR        Addr = 0xD5
	REG_NETD_PIXEL_X       Addr = 0xD6
	REG_NETD_PIXEL_Y       Addr = 0xD7
	REG_USER_FLASH_CTRL    Addr = 0xD8
	REG_SENXOR_ID_0        Addr = 0xE0
	REG_SENXOR_ID_1        Addr = 0xE1
	REG_SENXOR_ID_2        Addr = 0xE2
	REG_SENXOR_ID_3        Addr = 0xE3
	REG_SENXOR_ID_4        Addr = 0xE4
	REG_SENXOR_ID_5        Addr = 0xE5
	REG_SENXOR_ID_6        Addr = 0xE6
)

var mi48Registers = []Register{
	{Name: "MCU_RESET", Addr: REG_MCU_RESET, Writable: true, AutoReset: true, Desc: "Software Reset of the MI48"},
	{Name: "HOST_XFER_CTRL", Addr: REG_HOST_XFER_CTRL, Readable: true, Writable: true, AutoReset: true, Desc: "Host DMA transfer control"},
	{Name: "SPI_RTY", Addr: REG_SPI_RTY, Readable: true, Writable: true, AutoReset: true, Desc: "SPI retransmission control"},
	{Name: "FRAME_MODE", Addr: REG_FRAME_MODE, Readable: true, Writable: true, AutoReset: true, Desc: "Control capture and readout of thermal data"},
	{Name: "FW_VERSION_1", Addr: REG_FW_VERSION_1, Readable: true, Desc: "Firmware Version (Major, Minor)"},
	{Name: "FW_VERSION_2", Addr: REG_FW_VERSION_2, Readable: true, Desc: "Firmware Version (Build)"},
	{Name: "FRAME_RATE", Addr: REG_FRAME_RATE, Readable: true, Writable: true, Desc: "Frame rate"},
	{Name: "SLEEP_MODE", Addr: REG_SLEEP_MODE, Readable: true, Writable: true, AutoReset: true, Desc: "Control of low power state"},
	{Name: "STATUS", Addr: REG_STATUS, Readable: true, AutoReset: true, Desc: "MI48 and SenXor Status"},
	{Name: "CLK_SPEED", Addr: REG_CLK_SPEED, Readable: true, Writable: true, Desc: "Control of internal clock parameters"},
	{Name: "SENXOR_GAIN", Addr: REG_SENXOR_GAIN, Readable: true, Writable: true, Desc: "Module ADC gain control"},
	{Name: "SENXOR_TYPE", Addr: REG_SENXOR_TYPE, Readable: true, Desc: "SenXor chip type"},
	{Name: "MODULE_TYPE", Addr: REG_MODULE_TYPE, Readable: true, Desc: "Module type (chip-lens combination)"},
	{Name: "MCU_TYPE", Addr: REG_MCU_TYPE, Readable: true, Desc: "MCU type"},
	{Name: "TEMP_CONVERT_CTRL", Addr: REG_TEMP_CONVERT_CTRL, Readable: true, Writable: true, Desc: "Temperature Conversion Control"},
	{Name: "SENSITIVITY_FACTOR", Addr: REG_SENSITIVITY_FACTOR, Readable: true, Writable: true, Desc: "Sensitivity correction factor"},
	{Name: "SELF_CALIBRATION", Addr: REG_SELF_CALIBRATION, Readable: true, Writable: true, AutoReset: true, Desc: "Self-Calibration of column offset"},
	{Name: "EMISSIVITY", Addr: REG_EMISSIVITY, Readable: true, Writable: true, Desc: "Emissivity value for temperature conversion"},
	{Name: "OFFSET_CORR", Addr: REG_OFFSET_CORR, Readable: true, Writable: true, Desc: "Offset correction to the entire frame"},
	{Name: "OBJECT_TEMP_FACTOR", Addr: REG_OBJECT_TEMP_FACTOR, Readable: true, Writable: true, Desc: "Object temperature factor"},
	{Name: "SENXOR_ID_0", Addr: REG_SENXOR_ID_0, Readable: true, Desc: "Serial number of the attached camera module byte 0"},
	{Name: "SENXOR_ID_1", Addr: REG_SENXOR_ID_1, Readable: true, Desc: "Serial number of the attached camera module byte 1"},
	{Name: "SENXOR_ID_2", Addr: REG_SENXOR_ID_2, Readable: true, Desc: "Serial number of the attached camera module byte 2"},
	{Name: "SENXOR_ID_3", Addr: REG_SENXOR_ID_3, Readable: true, Desc: "Serial number of the attached camera module byte 3"},
	{Name: "SENXOR_ID_4", Addr: REG_SENXOR_ID_4, Readable: true, Desc: "Serial number of the attached camera module byte 4"},
	{Name: "SENXOR_ID_5", Addr: REG_SENXOR_ID_5, Readable: true, Desc: "Serial number of the attached camera module byte 5"},
	{Name: "SENXOR_ID_6", Addr: REG_SENXOR_ID_6, Readable: true, Desc: "Serial number of the attached camera module byte 6"},
	{Name: "USER_FLASH_CTRL", Addr: REG_USER_FLASH_CTRL, Readable: true, Writable: true, Desc: "Enable/Disable host access to User Flash"},
	{Name: "FRAME_FORMAT", Addr: REG_FRAME_FORMAT, Readable: true, Writable: true, Desc: "Temperature units of output frame"},
	{Name: "STARK_CTRL", Addr: REG_STARK_CTRL, Readable: true, Writable: true, Desc: "STARK denoising filter control"},
	{Name: "STARK_CUTOFF", Addr: REG_STARK_CUTOFF, Readable: true, Writable: true, Desc: "STARK filter cutoff"},
	{Name: "STARK_GRAD", Addr: REG_STARK_GRAD, Readable: true, Writable: true, Desc: "STARK filter gradient"},
	{Name: "STARK_SCALE", Addr: REG_STARK_SCALE, Readable: true, Writable: true, Desc: "STARK filter scale"},
	{Name: "MMS_CTRL", Addr: REG_MMS_CTRL, Readable: true, Writable: true, Desc: "Min/Max Stabilization control"},
	{Name: "MEDIAN_CTRL", Addr: REG_MEDIAN_CTRL, Readable: true, Writable: true, Desc: "Median denoising filter control"},
	{Name: "FILTER_CONTROL", Addr: REG_FILTER_CONTROL, Readable: true, Writable: true, AutoReset: true, Desc: "Temporal domain denoising filter control"},
	{Name: "FILTER_SETTING_1_0", Addr: REG_FILTER_SETTING_1_0, Readable: true, Writable: true, Desc: "Parameters for the temporal filter Low Byte"},
	{Name: "FILTER_SETTING_1_1", Addr: REG_FILTER_SETTING_1_1, Readable: true, Writable: true, Desc: "Parameters for the temporal filter High Byte"},
	{Name: "FILTER_SETTING_2", Addr: REG_FILTER_SETTING_2, Readable: true, Writable: true, Desc: "Rolling average filter depth"},
	{Name: "NETD_CONFIG", Addr: REG_NETD_CONFIG, Readable: true, Writable: true, Desc: "NETD measurement control"},
	{Name: "NETD_FACTOR", Addr: REG_NETD_FACTOR, Readable: true, Writable: true, Desc: "NETD measurement factor"},
	{Name: "NETD_PIXEL_X", Addr: REG_NETD_PIXEL_X, Readable: true, Writable: true, Desc: "NETD measurement pixel column"},
	{Name: "NETD_PIXEL_Y", Addr: REG_NETD_PIXEL_Y, Readable: true, Writable: true, Desc: "NETD measurement pixel row"},
}

var mi48 = MustNewMap(mi48Registers, mi48Fields)

// MI48 returns the register map of the MI48 thermal imaging processor.
func MI48() *Map {
	return mi48
}
