package lcd

// allMaps lists every sound sample packed into ALLMAPS.LCD, in archive order.
// PatchIndex is the patch sample index within DOOMSND.WMD.
var allMaps = []Sample{
	// PlayStation Doom and Final Doom
	{12, "SAMP0012.vag"},
	{13, "SAMP0013.vag"},
	{21, "SAMP0021.vag"},
	{22, "SAMP0022.vag"},
	{23, "SAMP0023.vag"},
	{24, "SAMP0024.vag"},
	{28, "SAMP0028.vag"},
	{29, "SAMP0029.vag"},
	{30, "SAMP0030.vag"},
	{31, "SAMP0031.vag"},
	{32, "SAMP0032.vag"},
	{33, "SAMP0033.vag"},
	{34, "SAMP0034.vag"},
	{35, "SAMP0035.vag"},
	{36, "SAMP0036.vag"},
	{37, "SAMP0037.vag"},
	{38, "SAMP0038.vag"},
	{39, "SAMP0039.vag"},
	{40, "SAMP0040.vag"},
	{41, "SAMP0041.vag"},
	{42, "SAMP0042.vag"},
	{43, "SAMP0043.vag"},
	{44, "SAMP0044.vag"},
	{45, "SAMP0045.vag"},
	{46, "SAMP0046.vag"},
	{47, "SAMP0047.vag"},
	{48, "SAMP0048.vag"},
	{49, "SAMP0049.vag"},
	{50, "SAMP0050.vag"},
	{51, "SAMP0051.vag"},
	{52, "SAMP0052.vag"},
	{53, "SAMP0053.vag"},
	{54, "SAMP0054.vag"},
	{55, "SAMP0055.vag"},
	{56, "SAMP0056.vag"},
	{58, "SAMP0058.vag"},
	{59, "SAMP0059.vag"},
	{64, "SAMP0064.vag"},
	{65, "SAMP0065.vag"},
	{66, "SAMP0066.vag"},
	{67, "SAMP0067.vag"},
	{68, "SAMP0068.vag"},
	{69, "SAMP0069.vag"},
	{70, "SAMP0070.vag"},
	{71, "SAMP0071.vag"},
	{72, "SAMP0072.vag"},
	{73, "SAMP0073.vag"},
	{74, "SAMP0074.vag"},
	{75, "SAMP0075.vag"},
	{76, "SAMP0076.vag"},
	{77, "SAMP0077.vag"},
	{78, "SAMP0078.vag"},
	{79, "SAMP0079.vag"},
	{80, "SAMP0080.vag"},
	{81, "SAMP0081.vag"},
	{82, "SAMP0082.vag"},

	// PC Doom II monsters added for custom maps
	{144, "sfx_vilsit.vag"},
	{145, "sfx_vipain.vag"},
	{146, "sfx_vildth.vag"},
	{147, "sfx_vilact.vag"},
	{148, "sfx_vilatk.vag"},
	{149, "sfx_flamst.vag"},
	{150, "sfx_flame.vag"},
	{151, "sfx_sssit.vag"},
	{152, "sfx_ssdth.vag"},
	{153, "sfx_keenpn.vag"},
	{154, "sfx_keendt.vag"},
	{155, "sfx_bossit.vag"},
	{156, "sfx_bospit.vag"},
	{157, "sfx_bospn.vag"},
	{158, "sfx_bosdth.vag"},
	{159, "sfx_boscub.vag"},
}

// AllMaps returns a copy of the ALLMAPS.LCD sample list.
func AllMaps() []Sample {
	out := make([]Sample, len(allMaps))
	copy(out, allMaps)

	return out
}
