//go:build !windows

package desktop

import "errors"

func setNativeWallpaper(string) error {
	return errors.New("SystemParametersInfoW is only available on windows")
}
