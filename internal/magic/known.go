package magic

// Magics found by earlier searches, each at the width of its square's mask.
// They are only tried first; each one is validated like any random candidate
// before it is used.
var RookBestMagics = [64]MagicValue{
	{0x8180001080224004, 12}, {0x40c0004420001000, 11}, {0x02000a00c0201080, 11}, {0x5480100080080004, 11},
	{0xa0800c0022480080, 11}, {0x0200100200040801, 11}, {0x0500028422000300, 11}, {0x01000040810001e6, 12},
	{0x41808000804000e0, 11}, {0x0411804002200188, 10}, {0x6000802000881000, 10}, {0x0000800804803000, 10},
	{0x1020800801820400, 10}, {0x8002000a00041018, 10}, {0x0105001200140100, 10}, {0x010080210000c080, 11},
	{0x0100888002400024, 11}, {0x00208b0040002100, 10}, {0x0200808020001009, 10}, {0x4812020020114108, 10},
	{0x0000910048010004, 10}, {0x920a008080020400, 10}, {0x0c00440028028110, 10}, {0x0002220018410084, 11},
	{0x0038400080002090, 11}, {0x0010004240002002, 10}, {0x1020080040100140, 10}, {0x50b0008080180012, 10},
	{0x0800a80080800400, 10}, {0x0098020080800400, 10}, {0x2022020400100148, 10}, {0x9200800080004500, 11},
	{0x2029804000800020, 11}, {0x0500201000400140, 10}, {0x0020004013002304, 10}, {0x001440200a001202, 10},
	{0x8d00800800800c00, 10}, {0xd064204008011084, 10}, {0x0000100a64006803, 10}, {0x0215000089000852, 11},
	{0x004000c080008021, 11}, {0x0410024020004000, 10}, {0x1280200010008080, 10}, {0x1002000960420010, 10},
	{0x020401e800808024, 10}, {0x408200081006000c, 10}, {0x0041000200110004, 10}, {0x0211000882450002, 11},
	{0x2009800022400080, 11}, {0x2500200040098080, 10}, {0x9182041080402200, 10}, {0x0c01801000180080, 10},
	{0x0000480004110100, 10}, {0x084d001c000a2900, 10}, {0x0000081022158400, 10}, {0x0000800100004880, 11},
	{0xa411058000402811, 12}, {0x0003082010844001, 11}, {0x20030220000850c3, 11}, {0x0061021000200409, 11},
	{0x1a01000402080011, 11}, {0x08010008020400a5, 11}, {0x0002001800840902, 11}, {0x0100040081012642, 12},
}

var BishopBestMagics = [64]MagicValue{
	{0x1041120811082180, 6}, {0x2009210424004041, 5}, {0x690c034401000080, 5}, {0x100808c101000108, 5},
	{0x0c44102800906004, 5}, {0x00548620200420a0, 5}, {0x4480840420060202, 5}, {0x0209008044024000, 6},
	{0x0d00040410240310, 5}, {0x0008180801004602, 5}, {0x109c900942112200, 5}, {0x0481a40400800020, 5},
	{0x5000308820002030, 5}, {0x0008820602202280, 5}, {0x08a0004104504088, 5}, {0xc2080080d1082100, 5},
	{0x0060281020422094, 5}, {0x4808051110008180, 5}, {0x0022201004011020, 7}, {0x080c0c2804105080, 7},
	{0x1084000220a00800, 7}, {0x010580811000a020, 7}, {0x00e1800618044240, 5}, {0x0200450304024102, 5},
	{0x8102700019105002, 5}, {0x1002090006480800, 5}, {0x2400c80030022842, 7}, {0x04011400480208a0, 9},
	{0x0001009101004002, 9}, {0xb001450002010140, 7}, {0x000c204001080a08, 5}, {0x0200818002020086, 5},
	{0x801004500322020a, 5}, {0x08080a1810100103, 5}, {0x0002004050041100, 7}, {0x4000020080480081, 9},
	{0x0804090110840040, 9}, {0x0ae430068001c808, 7}, {0x0010088a8c020200, 5}, {0xc04c410204002389, 5},
	{0x0080900861080900, 5}, {0x0120828450012024, 5}, {0x0002006208041110, 7}, {0x0002204208008081, 7},
	{0x1810080100400404, 7}, {0x8002009021010080, 7}, {0x01284868018158d0, 5}, {0x2402022042004100, 5},
	{0x0010411010108020, 5}, {0x0005208808080001, 5}, {0x0400020042084000, 5}, {0x0000020020880830, 5},
	{0x106680110a020100, 5}, {0x08158470325a0004, 5}, {0x4010041024004002, 5}, {0x011801040082028c, 5},
	{0x0548108201304020, 6}, {0x4030050082052002, 5}, {0x0184810882c84800, 5}, {0x0040dc4040208800, 5},
	{0x10040000100a0a00, 5}, {0x0824000408100100, 5}, {0x8000b09010810040, 5}, {0x0010040980840101, 6},
}
