package keytable

// Rows are grouped by the HID usage blocks they cover; index = usage.
var active = [...]Keycode{
	// 0x00-0x03: reserved usages.
	0x00, 0x00, 0x00, 0x00,
	// 0x04-0x1d: A-Z.
	0x1e, 0x2e, 0x2c, 0x20, 0x13, 0x21, 0x22, 0x23, 0x18, 0x24, 0x25, 0x26, 0x30,
	0x2f, 0x19, 0x1a, 0x11, 0x14, 0x1f, 0x15, 0x17, 0x2d, 0x12, 0x2b, 0x16, 0x2a,
	// 0x1e-0x27: 1-9, 0.
	0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b,
	// 0x28-0x38: Enter, Esc, Backspace, Tab, Space, then the JIS punctuation row.
	0x1d, 0x01, 0x0f, 0x10, 0x35,
	0x0c, 0x0d, 0x1b, 0x1c, 0x00, 0x29, 0x27, 0x28, 0x60, 0x31, 0x32, 0x33,
	// 0x39: CapsLock.
	0x5d,
	// 0x3a-0x43: F1-F10.
	0x63, 0x64, 0x65, 0x66, 0x67, 0x68, 0x69, 0x6a, 0x6b, 0x6c,
	// 0x44-0x53: F11/F12 and the editing cluster.
	0x5a, 0x5b, 0x62, 0x54, 0x61, 0x5e, 0x36, 0x39,
	0x37, 0x3a, 0x38, 0x3d, 0x3b, 0x3e, 0x3c, 0x3f,
	// 0x54-0x63: keypad.
	0x52, 0x53, 0x5c, 0x46, 0x4e,
	0x4b, 0x4c, 0x4d, 0x47, 0x48, 0x49, 0x43, 0x44, 0x45, 0x4f, 0x51,
	// 0x64-0x65
	0x00, 0x72,
	// 0x66-0x86: no X68000 counterpart.
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00,
	// 0x87-0x8b: International1-5.
	0x34, 0x58, 0x0e, 0x57, 0x56,
}

// Fails to compile if a row above gains or loses an entry.
var _ [Size]Keycode = active

// extended covers ExtendedFirst..ExtendedLast. It has never been verified on
// hardware and stays out of every lookup unless a Table enables it.
var extended = [ExtendedLast - ExtendedFirst + 1]Keycode{
	0xe0 - ExtendedFirst: 0x71,
	0xe1 - ExtendedFirst: 0x70,
	0xe2 - ExtendedFirst: 0x55,
	0xe3 - ExtendedFirst: 0x5f,
	0xe6 - ExtendedFirst: 0x59,
	0xe7 - ExtendedFirst: 0x72,
}

// X68000 key labels, indexed by usage. A label is the legend printed on the
// X68000 key whose keycode the slot produces, so 0x89 (keycode 0x0e) reads
// "Yen" after the ¥ | key. Slots without a keycode have no label.
var names = [ExtendedLast + 1]string{
	0x04: "A", 0x05: "B", 0x06: "C", 0x07: "D", 0x08: "E", 0x09: "F", 0x0a: "G",
	0x0b: "H", 0x0c: "I", 0x0d: "J", 0x0e: "K", 0x0f: "L", 0x10: "M", 0x11: "N",
	0x12: "O", 0x13: "P", 0x14: "Q", 0x15: "R", 0x16: "S", 0x17: "T", 0x18: "U",
	0x19: "V", 0x1a: "W", 0x1b: "X", 0x1c: "Y", 0x1d: "Z",

	0x1e: "1 !", 0x1f: "2 \"", 0x20: "3 #", 0x21: "4 $", 0x22: "5 %",
	0x23: "6 &", 0x24: "7 '", 0x25: "8 (", 0x26: "9 )", 0x27: "0",

	0x28: "Enter", 0x29: "Esc", 0x2a: "Backspace", 0x2b: "Tab", 0x2c: "Space",
	0x2d: "- =", 0x2e: "^ ~", 0x2f: "@ `", 0x30: "[ {", 0x32: "] }",
	0x33: "; +", 0x34: ": *", 0x35: "Zenkaku", 0x36: ", <", 0x37: ". >",
	0x38: "/ ?", 0x39: "CapsLock",

	0x3a: "F1", 0x3b: "F2", 0x3c: "F3", 0x3d: "F4", 0x3e: "F5",
	0x3f: "F6", 0x40: "F7", 0x41: "F8", 0x42: "F9", 0x43: "F10",

	0x44: "Kana", 0x45: "Romaji", 0x46: "Copy", 0x47: "Help", 0x48: "Break",
	0x49: "Ins", 0x4a: "Home", 0x4b: "Roll Down", 0x4c: "Del", 0x4d: "Undo",
	0x4e: "Roll Up", 0x4f: "Right", 0x50: "Left", 0x51: "Down", 0x52: "Up",
	0x53: "Clr",

	0x54: "Kigou", 0x55: "Touroku", 0x56: "Code", 0x57: "Num +", 0x58: "Num Enter",
	0x59: "Num 1", 0x5a: "Num 2", 0x5b: "Num 3", 0x5c: "Num 4", 0x5d: "Num 5",
	0x5e: "Num 6", 0x5f: "Num 7", 0x60: "Num 8", 0x61: "Num 9", 0x62: "Num 0",
	0x63: "Num .",

	0x65: "Opt.1",

	0x87: "_", 0x88: "XF4", 0x89: "Yen", 0x8a: "XF3", 0x8b: "XF2",

	0xe0: "Ctrl", 0xe1: "Shift", 0xe2: "XF1", 0xe3: "Hiragana",
	0xe6: "XF5", 0xe7: "Opt.1",
}
