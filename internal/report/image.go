package report

// ImageRef 已解析的图片/文件引用
type ImageRef struct {
	URL  string `json:"url"`
	Note string `json:"note"`
}

// ImagePair 清扫前后对比图片对，两侧不会同时为空
type ImagePair struct {
	Before *ImageRef `json:"before"`
	After  *ImageRef `json:"after"`
}

// RawImage 待解析的图片条目，AttachmentID为0表示附件缺失
type RawImage struct {
	AttachmentID uint
	Note         string
}

// RawFile 附件文件条目，URL直接随记录保存
type RawFile struct {
	URL  string
	Note string
}

// URLResolver 附件ID到URL的解析函数，返回空串表示解析失败
type URLResolver func(attachmentID uint) string

// resolveImage 解析单个图片条目，附件缺失或URL解析失败返回nil
func resolveImage(raw RawImage, resolve URLResolver) *ImageRef {
	if raw.AttachmentID == 0 {
		return nil
	}
	url := resolve(raw.AttachmentID)
	if url == "" {
		return nil
	}
	return &ImageRef{URL: url, Note: raw.Note}
}

// AssemblePairs 按下标把前后两组图片配成对
// 纯位置配对：两侧独立解析，越界或解析失败的一侧为nil，双侧均为nil的对整个丢弃
// 配对不做任何内容匹配，顺序由下标保证
func AssemblePairs(before, after []RawImage, resolve URLResolver) []ImagePair {
	maxCount := len(before)
	if len(after) > maxCount {
		maxCount = len(after)
	}

	pairs := make([]ImagePair, 0, maxCount)
	for i := 0; i < maxCount; i++ {
		var beforeRef, afterRef *ImageRef
		if i < len(before) {
			beforeRef = resolveImage(before[i], resolve)
		}
		if i < len(after) {
			afterRef = resolveImage(after[i], resolve)
		}

		if beforeRef == nil && afterRef == nil {
			continue
		}
		pairs = append(pairs, ImagePair{Before: beforeRef, After: afterRef})
	}

	return pairs
}

// AssembleGallery 解析单组图片，解析失败的条目直接略过
func AssembleGallery(images []RawImage, resolve URLResolver) []ImageRef {
	result := make([]ImageRef, 0, len(images))
	for _, raw := range images {
		if ref := resolveImage(raw, resolve); ref != nil {
			result = append(result, *ref)
		}
	}
	return result
}

// AssembleFiles 解析附件文件列表，URL为空的条目略过
func AssembleFiles(files []RawFile) []ImageRef {
	result := make([]ImageRef, 0, len(files))
	for _, file := range files {
		if file.URL == "" {
			continue
		}
		result = append(result, ImageRef{URL: file.URL, Note: file.Note})
	}
	return result
}
