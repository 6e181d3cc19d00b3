//go:build darwin

// Package permissions 提供系统权限检查（macOS 截屏/辅助功能）
package permissions

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework ApplicationServices -framework CoreGraphics
#import <Cocoa/Cocoa.h>
#import <ApplicationServices/ApplicationServices.h>
#import <CoreGraphics/CoreGraphics.h>

int vpCheckAccessibility(int prompt) {
    NSDictionary *options = @{(__bridge NSString *)kAXTrustedCheckOptionPrompt: prompt ? @YES : @NO};
    return AXIsProcessTrustedWithOptions((__bridge CFDictionaryRef)options) ? 1 : 0;
}

int vpCheckScreenRecording() {
    if (@available(macOS 10.15, *)) {
        CFArrayRef windowList = CGWindowListCopyWindowInfo(
            kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
            kCGNullWindowID
        );
        if (windowList == NULL) {
            return 0;
        }

        CFIndex count = CFArrayGetCount(windowList);
        int hasNames = 0;
        for (CFIndex i = 0; i < count; i++) {
            CFDictionaryRef window = (CFDictionaryRef)CFArrayGetValueAtIndex(windowList, i);
            CFStringRef name = (CFStringRef)CFDictionaryGetValue(window, kCGWindowName);
            if (name != NULL && CFStringGetLength(name) > 0) {
                hasNames = 1;
                break;
            }
        }
        CFRelease(windowList);
        return (count == 0 || hasNames) ? 1 : 0;
    }
    return 1;
}
*/
import "C"

// Status 权限状态
type Status struct {
	Accessibility   bool `json:"accessibility"`
	ScreenRecording bool `json:"screen_recording"`
}

// AllGranted 是否全部授权
func (s *Status) AllGranted() bool {
	return s.Accessibility && s.ScreenRecording
}

// Check 检查所需权限
func Check() *Status {
	return &Status{
		Accessibility:   C.vpCheckAccessibility(0) == 1,
		ScreenRecording: C.vpCheckScreenRecording() == 1,
	}
}

// RequestAccessibility 请求辅助功能权限（弹出系统提示）
func RequestAccessibility() bool {
	return C.vpCheckAccessibility(1) == 1
}

// Instructions 权限缺失时的操作指引
func Instructions(s *Status) string {
	if s.AllGranted() {
		return ""
	}
	msg := "需要在 系统设置 > 隐私与安全性 中授权："
	if !s.Accessibility {
		msg += " [辅助功能]"
	}
	if !s.ScreenRecording {
		msg += " [屏幕录制]"
	}
	msg += "，授权后请重启程序"
	return msg
}
