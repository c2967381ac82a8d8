package allowlist

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannesgao/docgate/core"
)

const (
	addrMixed = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	addrLower = "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"
	addrOther = "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359"
)

func TestLoadMembershipIsCaseInsensitive(t *testing.T) {
	l, err := Load(strings.NewReader("addresses:\n  - " + addrMixed + "\n"))
	require.NoError(t, err)

	assert.True(t, l.IsMember(core.Address(addrLower)))
	assert.False(t, l.IsMember(core.Address(addrOther)))
}

func TestLoadAcceptsJSON(t *testing.T) {
	l, err := Load(strings.NewReader(`{"addresses": ["` + addrLower + `"]}`))
	require.NoError(t, err)
	assert.True(t, l.IsMember(core.Address(addrLower)))
}

func TestLoadCollapsesDuplicates(t *testing.T) {
	src := "addresses:\n  - " + addrMixed + "\n  - " + addrLower + "\n"
	l, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())
}

func TestLoadEmptyListDeniesEveryone(t *testing.T) {
	l, err := Load(strings.NewReader("addresses: []\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.IsMember(core.Address(addrLower)))

	l, err = Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.False(t, l.IsMember(core.Address(addrLower)))
}

func TestLoadMalformedSourceFails(t *testing.T) {
	_, err := Load(strings.NewReader("addresses: {not: a list}\n"))
	assert.ErrorIs(t, err, core.ErrMalformedAllowList)
}

func TestLoadInvalidEntryFailsWholeLoad(t *testing.T) {
	src := "addresses:\n  - " + addrLower + "\n  - not-an-address\n"
	_, err := Load(strings.NewReader(src))
	assert.ErrorIs(t, err, core.ErrInvalidAddress)
}

func TestReloadSwapsWholeSet(t *testing.T) {
	l, err := Load(strings.NewReader("addresses:\n  - " + addrLower + "\n"))
	require.NoError(t, err)
	require.True(t, l.IsMember(core.Address(addrLower)))

	require.NoError(t, l.Reload(strings.NewReader("addresses:\n  - "+addrOther+"\n")))
	assert.False(t, l.IsMember(core.Address(addrLower)))
	assert.True(t, l.IsMember(core.Address(addrOther)))
}

func TestReloadFailureKeepsOldSnapshot(t *testing.T) {
	l, err := Load(strings.NewReader("addresses:\n  - " + addrLower + "\n"))
	require.NoError(t, err)

	err = l.Reload(strings.NewReader("addresses:\n  - bogus\n"))
	require.Error(t, err)
	assert.True(t, l.IsMember(core.Address(addrLower)), "failed reload must not disturb the active set")
}

func TestConcurrentReadersDuringReload(t *testing.T) {
	l, err := Load(strings.NewReader("addresses:\n  - " + addrLower + "\n"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					l.IsMember(core.Address(addrLower))
				}
			}
		}()
	}
	for i := 0; i < 100; i++ {
		require.NoError(t, l.Reload(strings.NewReader("addresses:\n  - "+addrLower+"\n")))
	}
	close(stop)
	wg.Wait()
}
