package cv

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
)

// ReadImage 读取图像文件
func ReadImage(filename string) (gocv.Mat, error) {
	mat := gocv.IMRead(filename, gocv.IMReadColor)
	if mat.Empty() {
		return mat, fmt.Errorf("无法读取图像: %s", filename)
	}
	return mat, nil
}

// ReadImageGray 读取灰度图像
func ReadImageGray(filename string) (gocv.Mat, error) {
	mat := gocv.IMRead(filename, gocv.IMReadGrayScale)
	if mat.Empty() {
		return mat, fmt.Errorf("无法读取图像: %s", filename)
	}
	return mat, nil
}

// WriteImage 保存图像文件
func WriteImage(filename string, img gocv.Mat) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	if ok := gocv.IMWrite(filename, img); !ok {
		return fmt.Errorf("保存图像失败: %s", filename)
	}
	return nil
}

// ToGray 转换为灰度图
func ToGray(src gocv.Mat) gocv.Mat {
	if src.Channels() == 1 {
		return src.Clone()
	}
	dst := gocv.NewMat()
	gocv.CvtColor(src, &dst, gocv.ColorBGRToGray)
	return dst
}

// ResizeImage 调整图像大小（线性插值）
func ResizeImage(img gocv.Mat, width, height int) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Resize(img, &dst, image.Point{X: width, Y: height}, 0, 0, gocv.InterpolationLinear)
	return dst
}

// CropImage 裁剪图像，越界部分自动收缩
func CropImage(img gocv.Mat, xMin, yMin, xMax, yMax int) gocv.Mat {
	if xMin < 0 {
		xMin = 0
	}
	if yMin < 0 {
		yMin = 0
	}
	if xMax > img.Cols() {
		xMax = img.Cols()
	}
	if yMax > img.Rows() {
		yMax = img.Rows()
	}

	region := img.Region(image.Rect(xMin, yMin, xMax, yMax))
	defer region.Close()
	return region.Clone()
}

// ImageToMat 将 image.Image 转换为 gocv.Mat（BGR）
func ImageToMat(img image.Image) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("图像转换失败: %w", err)
	}
	dst := gocv.NewMat()
	gocv.CvtColor(mat, &dst, gocv.ColorRGBToBGR)
	mat.Close()
	return dst, nil
}

// MatToImage 将 gocv.Mat 转换为 image.Image
func MatToImage(mat gocv.Mat) (image.Image, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("Mat 转换失败: %w", err)
	}
	return img, nil
}

// checkSourceLargerThanSearch 检查源图像是否不小于搜索图像
func checkSourceLargerThanSearch(source, search gocv.Mat) error {
	if source.Rows() < search.Rows() || source.Cols() < search.Cols() {
		return &ImageSizeError{
			SourceSize: Size{Width: source.Cols(), Height: source.Rows()},
			SearchSize: Size{Width: search.Cols(), Height: search.Rows()},
		}
	}
	return nil
}
