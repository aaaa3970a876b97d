// file: internal/aladin/fixtures_test.go
// version: 1.0.0
// guid: 9b1d3f5a-7c8e-4f9a-b0c1-d2e3f4a5b6c7

package aladin

// Trimmed-down copies of the site's markup, keeping just the structure the
// parser relies on.

const detailPageHTML = `<!DOCTYPE html>
<html>
<head>
<title>[알라딘]체 게바라 평전 - 역사 인물 찾기 10</title>
<meta property="og:image" content="http://image.aladin.co.kr/product/39/20/cover/8939205103_1.jpg"/>
<meta name="Description" content="체 게바라의 일대기를 다룬 평전"/>
</head>
<body>
<div class="p_topt_wrap">
  <a class="p_topt01" href="/shop/wproduct.aspx?ItemId=27942886">체 게바라 평전</a>
  <span class="p_series"><a href="/shop/common/wseriesitem.aspx?SRID=312">역사 인물 찾기 10</a></span>
</div>
<div class="p_contributors">
  <a class="np_af" href="/search/wsearchresult.aspx?AuthorSearch=%c0%e5+%c4%da%b8%a3%b9%cc%bf%a1@123&amp;BranchType=1">장 코르미에</a> (지은이) |
  <a class="np_af" href="/search/wsearchresult.aspx?AuthorSearch=%b1%e8%b9%cc%bc%b1@456&amp;BranchType=1">김미선</a> (옮긴이) |
  <a class="np_af" href="/search/wsearchresult.aspx?PublisherSearch=%bd%c7%c3%b5%b9%ae%c7%d0%bb%e7@789&amp;BranchType=1">실천문학사</a> | 2005-05-25
</div>
<span class="star_nom">9.2</span>
<div class="p_goodstd03">양장본 | 720쪽 | ISBN(13) : 9788939205109 | 언어 : Korean</div>
<div class="p_categorize">
  <ul>
    <li>국내도서 &gt; 역사 &gt; 인물이야기</li>
    <li>국내도서&nbsp;&gt;&nbsp;전기/자서전</li>
  </ul>
</div>
<div id="div_itemtaglist">
  <a href="/tag/wtagresult.aspx?tagname=혁명">혁명</a>
  <a href="/tag/wtagresult.aspx?tagname=쿠바">쿠바</a>
</div>
</body>
</html>`

const detailPageNoSeriesHTML = `<!DOCTYPE html>
<html>
<head><title>[알라딘]광장</title></head>
<body>
<div><a class="p_topt01" href="/shop/wproduct.aspx?ItemId=8932008485">광장</a></div>
<div>
  <a class="np_af" href="/search/wsearchresult.aspx?AuthorSearch=a@1">최인훈</a> (지은이) |
  <a class="np_af" href="/search/wsearchresult.aspx?PublisherSearch=p@2">문학과지성사</a> | 1996-11-20
</div>
<div class="p_goodstd03">ISBN : 893200848X</div>
</body>
</html>`

const noResultPageHTML = `<!DOCTYPE html>
<html>
<head><title>[알라딘] "좋은 책을 고르는 방법, 알라딘"</title></head>
<body><div>검색 결과가 없습니다.</div></body>
</html>`

const searchPageHTML = `<!DOCTYPE html>
<html>
<body>
<div id="Search3_Result">
  <div class="ss_book_box" itemid="1">
    <div class="ss_book_list">
      <ul><li>
        <a class="bo3" href="/shop/wproduct.aspx?ItemId=27942886"><b>체 게바라 평전 (양장)</b></a>
        <a href="/search/wsearchresult.aspx?AuthorSearch=x@1">장 코르미에</a>
        <a href="/search/wsearchresult.aspx?AuthorSearch=y@2">김미선</a>
      </li></ul>
    </div>
  </div>
  <div class="ss_book_box" itemid="2">
    <div class="ss_book_list">
      <ul><li>
        <a class="bo3" href="/shop/wproduct.aspx?ItemId=55555">[eBook] 체 게바라 평전</a>
      </li></ul>
    </div>
  </div>
  <div class="ss_book_box" itemid="3">
    <div class="ss_book_list">
      <ul><li>
        <a class="bo3" href="/shop/wproduct.aspx?ItemId=66666">전혀 다른 책</a>
        <a href="/search/wsearchresult.aspx?AuthorSearch=z@3">다른 저자</a>
      </li></ul>
    </div>
  </div>
</div>
</body>
</html>`

const contentsPageHTML = `<!DOCTYPE html>
<html>
<body>
<div class="p_textbox">
  <p>체 게바라의 전 생애를 다룬 평전.</p>
  <script>alert("tracking")</script>
  <style>.x{}</style>
</div>
<div id="div_TOC_All">
  <p>1장 유년 시절<br/>2장 여행</p>
</div>
</body>
</html>`
