package mahjong

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// parseTiles 测试用 mpsz 解析，z 为 1-7 东南西北白发中
func parseTiles(t testing.TB, s string) []TileType {
	t.Helper()
	var out []TileType
	var digits []int
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
			digits = append(digits, int(ch-'0'))
		case ch == 'm' || ch == 'p' || ch == 's' || ch == 'z':
			for _, d := range digits {
				if d == 0 {
					d = 5
				}
				switch ch {
				case 'm':
					out = append(out, Man1+TileType(d-1))
				case 'p':
					out = append(out, Pin1+TileType(d-1))
				case 's':
					out = append(out, So1+TileType(d-1))
				case 'z':
					require.LessOrEqual(t, d, 7)
					out = append(out, East+TileType(d-1))
				}
			}
			digits = digits[:0]
		default:
			t.Fatalf("bad tile string %q", s)
		}
	}
	require.Empty(t, digits, "dangling digits in %q", s)
	return out
}

func hand(t testing.TB, s string) Hand34 {
	t.Helper()
	h, err := Hand34FromTiles(parseTiles(t, s))
	require.NoError(t, err)
	return h
}

func tile(t testing.TB, s string) TileType {
	t.Helper()
	ts := parseTiles(t, s)
	require.Len(t, ts, 1)
	return ts[0]
}

func meld(t testing.TB, typ MeldType, s string) Meld {
	t.Helper()
	m, err := NewMeld(typ, parseTiles(t, s)...)
	require.NoError(t, err)
	return m
}
