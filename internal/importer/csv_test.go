package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onerilhan/guild-payout-api/internal/models"
)

// TestParseMembers header adları esnek eşleşmeli, bilinmeyen kolonlar yok sayılmalı
func TestParseMembers(t *testing.T) {
	src := "Username,Payout,last_payout_due,Date Joined,notes\n" +
		"alice,100.50,2024-01-15,01/02/2023,officer\n" +
		"\n" +
		"bob,,,,\n"

	members, err := ParseMembers(strings.NewReader(src))

	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "alice", members[0].Username)
	assert.Equal(t, "100.5", members[0].Payout.String())
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), members[0].LastPayoutDue)
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), members[0].DateJoined)
	assert.True(t, members[1].Payout.IsZero())
	assert.True(t, members[1].DateJoined.IsZero())
}

// TestParseMembers_BadPayout sayı olmayan payout satır ve kolonu belirtmeli
func TestParseMembers_BadPayout(t *testing.T) {
	src := "username,payout\nalice,10\nbob,lots\n"

	_, err := ParseMembers(strings.NewReader(src))

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Contains(t, err.Error(), "satır 3")
	assert.Contains(t, err.Error(), "payout")
}

// TestParseMembers_MissingUsername username boş satır reddedilmeli
func TestParseMembers_MissingUsername(t *testing.T) {
	_, err := ParseMembers(strings.NewReader("username,payout\n,10\n"))

	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

// TestParseMembers_Empty boş dosya hata vermeli
func TestParseMembers_Empty(t *testing.T) {
	_, err := ParseMembers(strings.NewReader(""))

	assert.ErrorIs(t, err, ErrEmptyFile)
}

// TestParsePrices frontend kolon adları okunmalı
func TestParsePrices(t *testing.T) {
	src := "itemName,timing,T7,T8,BW_4_3,BW_6_2,BW_lastChecked,FS_5_2,FS_last_Checked,alternativeTier\n" +
		"Bag,daily,1.5,2,3,4,2024-03-01T10:00:00Z,5.25,,T8\n"

	prices, err := ParsePrices(strings.NewReader(src))

	require.NoError(t, err)
	require.Len(t, prices, 1)
	p := prices[0]
	assert.Equal(t, "Bag", p.ItemName)
	assert.Equal(t, "daily", p.Timing)
	assert.Equal(t, 1.5, p.T7)
	assert.Equal(t, 2.0, p.T8)
	assert.Equal(t, 3.0, p.BW43)
	assert.Equal(t, 4.0, p.BW62)
	assert.Equal(t, 5.25, p.FS52)
	assert.Zero(t, p.FS43)
	assert.True(t, p.BWLastChecked.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	assert.True(t, p.FSLastChecked.IsZero())
	assert.Equal(t, "T8", p.AlternativeTier)
}

// TestParsePrices_BadDate tanınmayan tarih hata vermeli
func TestParsePrices_BadDate(t *testing.T) {
	_, err := ParsePrices(strings.NewReader("itemName,BW_lastChecked\nBag,yesterday\n"))

	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Contains(t, err.Error(), "bwlastchecked")
}
